package pantry

import (
	"math"
	"sort"
	"strings"
	"time"

	"smart-chef/internal/core/text"
	"smart-chef/internal/pkg/common"
)

// DefaultTopN 預設呈現的推薦數量
const DefaultTopN = 6

// ScoreBreakdown 各評分因子的貢獻
type ScoreBreakdown struct {
	Macro     float64 `json:"macro"`
	Expiry    float64 `json:"expiry"`
	Adventure float64 `json:"adventure"`
	Prefs     float64 `json:"prefs"`
	Learn     float64 `json:"learn"`
}

// RankedRecipe 排名後的推薦項目
type RankedRecipe struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Ingredients string         `json:"ingredients"`
	Tags        string         `json:"tags"`
	Kcal        float64        `json:"kcal"`
	Score       float64        `json:"score"`
	Why         ScoreBreakdown `json:"why"`
	Hint        string         `json:"hint,omitempty"`
	Reasons     []string       `json:"reasons,omitempty"`
}

// RankOptions 排名參數
type RankOptions struct {
	MealShare float64 // 單餐熱量比例，預設 0.4
	TopN      int     // 呈現數量，預設 6
}

// Rank 為每份食譜計算總分並回傳前 N 名。
// 總分 = 巨量營養符合度 + 到期分數 + 冒險加分 + 討厭扣分 + 學習調整，
// 下限 0、四捨五入到小數第 4 位；同分維持原始食譜順序（穩定排序）。
// 未通過偏好過濾的食譜完全排除
func Rank(recipes []Recipe, inv []InventoryItem, prefs Preferences, goals Goals,
	ratings []Rating, ads []Ad, now time.Time, opts RankOptions) []RankedRecipe {

	share := opts.MealShare
	if share <= 0 {
		share = DefaultMealShare
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	have, soon := HaveSoonSets(inv, now)
	targets := ComputeMacroTargets(goals.DailyCalorieTarget, goals.CarbPref, share)
	sums := RatingSums(ratings)

	ranked := make([]RankedRecipe, 0, len(recipes))
	for _, r := range recipes {
		if !Allowed(r.Tags, prefs) {
			continue
		}
		vals := RecipeMacros(r)
		why := ScoreBreakdown{
			Macro:     MacroFit(vals, targets),
			Expiry:    ExpiryScore(r.Ingredients, have, soon),
			Adventure: AdventureBonus(r.Ingredients, goals.Adventurous),
			Prefs:     DislikePenalty(r.Ingredients, goals.Dislikes),
			Learn:     LearnedAdjustment(r.ID, sums),
		}
		total := why.Macro + why.Expiry + why.Adventure + why.Prefs + why.Learn
		if total < 0 {
			total = 0
		}
		kcal := 0.0
		if vals.Cal != nil {
			kcal = *vals.Cal
		}
		item := RankedRecipe{
			ID:          r.ID,
			Title:       r.Title,
			Ingredients: r.Ingredients,
			Tags:        r.Tags,
			Kcal:        kcal,
			Score:       math.Round(total*10000) / 10000,
			Why:         why,
			Hint:        SaleHint(r.Ingredients, ads),
		}
		item.Reasons = reasons(item)
		ranked = append(ranked, item)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// reasons 組出給使用者看的推薦理由
func reasons(r RankedRecipe) []string {
	var out []string
	if r.Why.Expiry > 0 {
		out = append(out, "Uses ingredients that are expiring soon")
	}
	if r.Why.Macro > 0.6 {
		out = append(out, "Strong macro match to tonight's target")
	}
	if r.Why.Adventure > 0.05 {
		out = append(out, "Adds a touch of flavor adventure")
	}
	if r.Why.Learn > 0 {
		out = append(out, "Similar to meals you liked")
	}
	if r.Hint != "" {
		out = append(out, r.Hint)
	}
	return out
}

// RecommendService 推薦服務：讀取 profile 的所有資料表後排名
type RecommendService struct {
	store     Store
	threshold float64
	opts      RankOptions
}

// NewRecommendService 創建推薦服務
func NewRecommendService(store Store, threshold float64, opts RankOptions) *RecommendService {
	if threshold <= 0 {
		threshold = text.DefaultMatchThreshold
	}
	return &RecommendService{store: store, threshold: threshold, opts: opts}
}

// Recommend 回傳 profile 目前的前 N 名推薦
func (s *RecommendService) Recommend(profile string, now time.Time) ([]RankedRecipe, error) {
	recipes, err := s.store.LoadRecipes(profile)
	if err != nil {
		return nil, err
	}
	inv, err := s.store.LoadInventory(profile)
	if err != nil {
		return nil, err
	}
	ratings, err := s.store.LoadRatings(profile)
	if err != nil {
		return nil, err
	}
	prefs, err := s.store.LoadPreferences(profile)
	if err != nil {
		return nil, err
	}
	goals, err := s.store.LoadGoals(profile)
	if err != nil {
		return nil, err
	}
	ads, err := s.store.LoadAds(profile)
	if err != nil {
		return nil, err
	}
	return Rank(recipes, inv, prefs, goals, ratings, ads, now, s.opts), nil
}

// MissingItems 檢查食譜缺少的食材：逐行解析名稱並模糊比對庫存，
// 比對不到的名稱視為缺少；回傳排序後的相異名稱
func (s *RecommendService) MissingItems(profile, recipeID string) ([]string, error) {
	recipes, err := s.store.LoadRecipes(profile)
	if err != nil {
		return nil, err
	}
	var recipe *Recipe
	for i := range recipes {
		if recipes[i].ID == recipeID {
			recipe = &recipes[i]
			break
		}
	}
	if recipe == nil {
		return nil, common.ErrRecipeNotFound
	}

	inv, err := s.store.LoadInventory(profile)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(inv))
	for i, it := range inv {
		names[i] = it.Name
	}

	seen := make(map[string]struct{})
	var missing []string
	for _, line := range strings.Split(recipe.Ingredients, ",") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p := text.ParseLine(line)
		if _, _, ok := text.BestMatch(names, p.Name, s.threshold); ok {
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		missing = append(missing, p.Name)
	}
	sort.Strings(missing)
	return missing, nil
}
