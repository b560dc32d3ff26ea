package store

import (
	"context"
	"encoding/json"
	"fmt"

	"smart-chef/internal/core/pantry"

	"github.com/go-redis/redis/v8"
)

// RedisStore 以 Redis 落地的持久層；
// 每張資料表存成一個 JSON 文件，鍵為 smartchef:{profile}:{table}
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 創建 Redis 持久層並測試連接
func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Close 關閉連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(profile, table string) string {
	return fmt.Sprintf("smartchef:%s:%s", profile, table)
}

// loadJSON 讀取並解析一張資料表；鍵不存在視為空表，
// 解析失敗記錄後同樣回傳空表
func (s *RedisStore) loadJSON(profile, table string, v interface{}) error {
	data, err := s.client.Get(context.Background(), redisKey(profile, table)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to get %s: %w", table, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		logStoreFallback(profile, table, err)
	}
	return nil
}

// saveJSON 整表覆寫一張資料表
func (s *RedisStore) saveJSON(profile, table string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", table, err)
	}
	if err := s.client.Set(context.Background(), redisKey(profile, table), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", table, err)
	}
	return nil
}

// LoadInventory 讀取庫存表
func (s *RedisStore) LoadInventory(profile string) ([]pantry.InventoryItem, error) {
	var items []pantry.InventoryItem
	if err := s.loadJSON(profile, "inventory", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveInventory 整表覆寫庫存表
func (s *RedisStore) SaveInventory(profile string, items []pantry.InventoryItem) error {
	return s.saveJSON(profile, "inventory", items)
}

// LoadRecipes 讀取食譜表
func (s *RedisStore) LoadRecipes(profile string) ([]pantry.Recipe, error) {
	var recipes []pantry.Recipe
	if err := s.loadJSON(profile, "recipes", &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// SaveRecipes 整表覆寫食譜表
func (s *RedisStore) SaveRecipes(profile string, recipes []pantry.Recipe) error {
	return s.saveJSON(profile, "recipes", recipes)
}

// LoadRatings 讀取評分表
func (s *RedisStore) LoadRatings(profile string) ([]pantry.Rating, error) {
	var ratings []pantry.Rating
	if err := s.loadJSON(profile, "ratings", &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// SaveRatings 整表覆寫評分表
func (s *RedisStore) SaveRatings(profile string, ratings []pantry.Rating) error {
	return s.saveJSON(profile, "ratings", ratings)
}

// LoadAds 讀取特價廣告表
func (s *RedisStore) LoadAds(profile string) ([]pantry.Ad, error) {
	var ads []pantry.Ad
	if err := s.loadJSON(profile, "ads", &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// SaveAds 整表覆寫特價廣告表
func (s *RedisStore) SaveAds(profile string, ads []pantry.Ad) error {
	return s.saveJSON(profile, "ads", ads)
}

// LoadShoppingList 讀取購物清單
func (s *RedisStore) LoadShoppingList(profile string) ([]pantry.ShoppingListItem, error) {
	var items []pantry.ShoppingListItem
	if err := s.loadJSON(profile, "shopping_list", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveShoppingList 整表覆寫購物清單
func (s *RedisStore) SaveShoppingList(profile string, items []pantry.ShoppingListItem) error {
	return s.saveJSON(profile, "shopping_list", items)
}

// LoadCookLog 讀取烹飪紀錄
func (s *RedisStore) LoadCookLog(profile string) ([]pantry.CookLogEntry, error) {
	var entries []pantry.CookLogEntry
	if err := s.loadJSON(profile, "cooked_log", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveCookLog 整表覆寫烹飪紀錄
func (s *RedisStore) SaveCookLog(profile string, entries []pantry.CookLogEntry) error {
	return s.saveJSON(profile, "cooked_log", entries)
}

// LoadPreferences 讀取偏好設定；鍵不存在時回傳預設值
func (s *RedisStore) LoadPreferences(profile string) (pantry.Preferences, error) {
	prefs := pantry.DefaultPreferences()
	if err := s.loadJSON(profile, "prefs", &prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// SavePreferences 覆寫偏好設定
func (s *RedisStore) SavePreferences(profile string, prefs pantry.Preferences) error {
	return s.saveJSON(profile, "prefs", prefs)
}

// LoadGoals 讀取營養目標；鍵不存在時回傳預設值
func (s *RedisStore) LoadGoals(profile string) (pantry.Goals, error) {
	goals := pantry.DefaultGoals()
	if err := s.loadJSON(profile, "goals", &goals); err != nil {
		return goals, err
	}
	return goals, nil
}

// SaveGoals 覆寫營養目標
func (s *RedisStore) SaveGoals(profile string, goals pantry.Goals) error {
	return s.saveJSON(profile, "goals", goals)
}
