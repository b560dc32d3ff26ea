// Package adfeed 從外部特價廣告來源抓取資料並同步到 profile 的 ads 資料表
package adfeed

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"smart-chef/internal/core/pantry"
	"smart-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 特價廣告來源客戶端。
// 同一來源在 TTL 內重複抓取時直接回快取，避免打爆外部服務
type Client struct {
	url      string
	cacheTTL time.Duration
	client   *resty.Client

	mu        sync.RWMutex
	cached    []pantry.Ad
	fetchedAt time.Time
}

// NewClient 創建特價廣告客戶端
func NewClient(url string, timeout, cacheTTL time.Duration) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		url:      url,
		cacheTTL: cacheTTL,
		client:   client,
	}
}

// Fetch 抓取目前的特價廣告；來源未設定時回傳空表
func (c *Client) Fetch(ctx context.Context) ([]pantry.Ad, error) {
	if c.url == "" {
		return nil, nil
	}

	// 檢查快取
	c.mu.RLock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.cacheTTL {
		ads := c.cached
		c.mu.RUnlock()
		common.LogDebug("廣告快取命中",
			zap.Int("count", len(ads)),
		)
		return ads, nil
	}
	c.mu.RUnlock()

	// 發送請求
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ad feed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("ad feed returned status %d", resp.StatusCode())
	}

	// 解析回應
	var ads []pantry.Ad
	if err := common.ParseJSONBytes(resp.Body(), &ads); err != nil {
		return nil, fmt.Errorf("failed to parse ad feed: %w", err)
	}

	// 更新快取
	c.mu.Lock()
	c.cached = ads
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	common.LogInfo("廣告來源抓取完成",
		zap.Int("count", len(ads)),
		zap.Duration("cache_ttl", c.cacheTTL),
	)
	return ads, nil
}

// Sync 抓取特價廣告並覆寫 profile 的 ads 資料表，回傳同步筆數
func (c *Client) Sync(ctx context.Context, store pantry.Store, profile string) (int, error) {
	ads, err := c.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if err := store.SaveAds(profile, ads); err != nil {
		return 0, err
	}
	return len(ads), nil
}
