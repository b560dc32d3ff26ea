package pantry

import (
	"strings"
	"sync"
	"time"

	"smart-chef/internal/core/text"
	"smart-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// CookService 烹飪交易服務。
// 每個 profile 僅保留一個可復原的交易識別碼（單槽指標，非堆疊）：
// 復原前再烹飪一次，前一筆交易就無法經由此機制復原
type CookService struct {
	store     Store
	threshold float64

	mu       sync.Mutex
	lastCook map[string]string // profile → 最近一次烹飪交易的 ts
}

// NewCookService 創建烹飪交易服務
func NewCookService(store Store, threshold float64) *CookService {
	if threshold <= 0 {
		threshold = text.DefaultMatchThreshold
	}
	return &CookService{
		store:     store,
		threshold: threshold,
		lastCook:  make(map[string]string),
	}
}

// CookResult 烹飪交易結果
type CookResult struct {
	Entry   CookLogEntry `json:"entry"`
	Changes []CookChange `json:"changes"`
	Zeroed  []string     `json:"zeroed"`
}

// Cook 執行烹飪交易：對每個逗號分隔的食材行解析數量／單位／名稱，
// 模糊比對庫存後做單位感知扣減；比對不到的行靜默略過。
// 副作用：覆寫庫存、追加 CookLogEntry、autoList 開啟時為歸零品項追加購物清單。
// 交易 ts 成為唯一的復原指標（覆蓋先前的指標）。
// 庫存為空時拒絕執行且不做任何變動
func (s *CookService) Cook(profile string, recipe Recipe, servings int, autoList bool, now time.Time) (*CookResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	// 變動前重新讀取最新庫存，不信任過期的記憶體複本
	inv, err := s.store.LoadInventory(profile)
	if err != nil {
		return nil, err
	}
	if len(inv) == 0 {
		return nil, common.ErrEmptyInventory
	}

	base := recipe.Servings
	if base < 1 {
		base = 1
	}
	if servings < 1 {
		servings = base
	}
	scale := float64(servings) / float64(base)

	names := make([]string, len(inv))
	for i, it := range inv {
		names[i] = it.Name
	}

	var changes []CookChange
	var zeroed []string
	for _, line := range strings.Split(recipe.Ingredients, ",") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p := text.ParseLine(line)
		idx, score, ok := text.BestMatch(names, p.Name, s.threshold)
		if !ok {
			common.LogDebug("食材無匹配，略過扣減",
				zap.String("profile", profile),
				zap.String("line", line),
			)
			continue
		}
		common.LogDebug("食材匹配",
			zap.String("line", line),
			zap.String("matched", inv[idx].Name),
			zap.Float64("score", score),
		)
		change, hitZero := Decrement(&inv[idx], p.Qty, p.Unit, scale)
		changes = append(changes, change)
		if hitZero {
			zeroed = append(zeroed, inv[idx].Name)
		}
	}

	entry := CookLogEntry{
		TS:          now.UTC().Format(time.RFC3339Nano),
		RecipeID:    recipe.ID,
		RecipeTitle: recipe.Title,
		Changes:     changes,
	}

	if err := s.store.SaveInventory(profile, inv); err != nil {
		return nil, err
	}

	log, err := s.store.LoadCookLog(profile)
	if err != nil {
		return nil, err
	}
	log = append(log, entry)
	if err := s.store.SaveCookLog(profile, log); err != nil {
		return nil, err
	}

	if autoList && len(zeroed) > 0 {
		list, err := s.store.LoadShoppingList(profile)
		if err != nil {
			return nil, err
		}
		for _, name := range zeroed {
			list = append(list, ShoppingListItem{
				Product: name,
				Qty:     1,
				Note:    "auto-added (hit zero)",
			})
		}
		if err := s.store.SaveShoppingList(profile, list); err != nil {
			return nil, err
		}
	}

	s.lastCook[profile] = entry.TS

	common.LogCookTransaction(profile, recipe.Title, len(changes), len(zeroed), time.Since(start))

	return &CookResult{
		Entry:   entry,
		Changes: changes,
		Zeroed:  zeroed,
	}, nil
}

// Undo 復原最近一次烹飪交易：依交易紀錄逐筆以名稱（不分大小寫）
// 找回品項並還原帶號變化量，移除交易紀錄並清空復原指標。
// 指標不存在或紀錄已遺失時回傳可見的 no-op 錯誤，不做任何變動
func (s *CookService) Undo(profile string) (*CookLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.lastCook[profile]
	if !ok || ts == "" {
		return nil, common.ErrNothingToUndo
	}

	log, err := s.store.LoadCookLog(profile)
	if err != nil {
		return nil, err
	}
	entryIdx := -1
	for i, e := range log {
		if e.TS == ts {
			entryIdx = i
			break
		}
	}
	if entryIdx < 0 {
		return nil, common.ErrNothingToUndo
	}
	entry := log[entryIdx]

	inv, err := s.store.LoadInventory(profile)
	if err != nil {
		return nil, err
	}
	nameToIdx := make(map[string]int, len(inv))
	for i, it := range inv {
		nameToIdx[strings.ToLower(strings.TrimSpace(it.Name))] = i
	}

	for _, ch := range entry.Changes {
		idx, found := nameToIdx[strings.ToLower(strings.TrimSpace(ch.Name))]
		if !found {
			continue
		}
		// delta 為負值，減去即加回
		inv[idx].Quantity = inv[idx].Quantity - ch.Delta
	}

	if err := s.store.SaveInventory(profile, inv); err != nil {
		return nil, err
	}

	log = append(log[:entryIdx], log[entryIdx+1:]...)
	if err := s.store.SaveCookLog(profile, log); err != nil {
		return nil, err
	}

	delete(s.lastCook, profile)

	common.LogInfo("復原完成，庫存已還原",
		zap.String("profile", profile),
		zap.String("recipe", entry.RecipeTitle),
		zap.Int("restored_items", len(entry.Changes)),
	)

	return &entry, nil
}

// LastCookTS 目前的復原指標；無可復原交易時回傳空字串
func (s *CookService) LastCookTS(profile string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCook[profile]
}
