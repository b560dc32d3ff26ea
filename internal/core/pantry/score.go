package pantry

import (
	"fmt"
	"math"
	"strings"
)

// DefaultMealShare 單餐佔每日熱量目標的預設比例
const DefaultMealShare = 0.4

// MacroTargets 單餐巨量營養目標
type MacroTargets struct {
	Cal      float64 `json:"cal"`
	CarbG    float64 `json:"carb_g"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
}

// ComputeMacroTargets 依每日熱量目標與碳水偏好計算單餐目標。
// 熱量預算 = daily × share，下限 100 kcal；
// 碳水／蛋白質以每克 4 kcal 換算，脂肪以每克 9 kcal 換算
func ComputeMacroTargets(dailyCal int, carbPref string, share float64) MacroTargets {
	if dailyCal == 0 {
		dailyCal = 2000
	}
	var carb, protein, fat float64
	switch carbPref {
	case CarbPrefLower:
		carb, protein, fat = 0.30, 0.30, 0.40
	case CarbPrefHigher:
		carb, protein, fat = 0.60, 0.20, 0.20
	default:
		carb, protein, fat = 0.50, 0.20, 0.30
	}
	cal := float64(int(float64(dailyCal) * share))
	if cal < 100 {
		cal = 100
	}
	return MacroTargets{
		Cal:      cal,
		CarbG:    cal * carb / 4,
		ProteinG: cal * protein / 4,
		FatG:     cal * fat / 9,
	}
}

// MacroValues 食譜每份的巨量營養值；缺漏欄位為 nil
type MacroValues struct {
	Cal      *float64
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
}

// macroEntry 估算表項目：每 100g 等效的 kcal／蛋白質／碳水／脂肪
type macroEntry struct {
	cal, protein, carbs, fat float64
}

// 估算用的固定食材關鍵字表
var macroTable = map[string]macroEntry{
	"chicken breast": {165, 31, 0, 4},
	"salmon":         {208, 20, 0, 13},
	"tofu":           {144, 15, 3, 9},
	"black beans":    {130, 9, 23, 1},
	"pasta":          {157, 6, 31, 1},
	"rice":           {130, 2.7, 28, 0.3},
	"olive oil":      {119, 0, 0, 13.5},
	"oats":           {389, 17, 66, 7},
}

// EstimateMacros 缺少營養欄位時的估算回退：
// 對逗號／換行切開的每個片段做關鍵字子字串比對，
// 每個關鍵字僅計一次，總和除以 max(1, servings)。
// 只填入至少命中一個關鍵字的欄位
func EstimateMacros(ingredientsText string, servings int) MacroValues {
	if servings < 1 {
		servings = 1
	}
	var cal, protein, carbs, fat float64
	used := make(map[string]struct{})
	for _, tok := range splitCommaNewline(ingredientsText) {
		for k, e := range macroTable {
			if _, seen := used[k]; seen {
				continue
			}
			if strings.Contains(tok, k) {
				cal += e.cal
				protein += e.protein
				carbs += e.carbs
				fat += e.fat
				used[k] = struct{}{}
			}
		}
	}
	div := float64(servings)
	var out MacroValues
	if cal > 0 {
		v := cal / div
		out.Cal = &v
	}
	if protein > 0 {
		v := protein / div
		out.ProteinG = &v
	}
	if carbs > 0 {
		v := carbs / div
		out.CarbsG = &v
	}
	if fat > 0 {
		v := fat / div
		out.FatG = &v
	}
	return out
}

// RecipeMacros 取食譜的營養值；calories_per_serving 缺漏或為 0 時改用估算
func RecipeMacros(r Recipe) MacroValues {
	if r.CaloriesPerServing != nil && *r.CaloriesPerServing != 0 {
		return MacroValues{
			Cal:      r.CaloriesPerServing,
			ProteinG: r.ProteinG,
			CarbsG:   r.CarbsG,
			FatG:     r.FatG,
		}
	}
	servings := r.Servings
	if servings == 0 {
		servings = 4
	}
	return EstimateMacros(r.Ingredients, servings)
}

// MacroFit 巨量營養符合度 [0,1]：
// 對 vals 與 targets 皆存在（target>0）的維度取 max(0, 1-|v-t|/t) 的平均；
// 無重疊維度時回傳 0
func MacroFit(vals MacroValues, t MacroTargets) float64 {
	type dim struct {
		v *float64
		t float64
	}
	dims := []dim{
		{vals.Cal, t.Cal},
		{vals.CarbsG, t.CarbG},
		{vals.ProteinG, t.ProteinG},
		{vals.FatG, t.FatG},
	}
	sum, n := 0.0, 0
	for _, d := range dims {
		if d.v == nil || *d.v == 0 || d.t <= 0 {
			continue
		}
		dev := math.Abs(*d.v-d.t) / d.t
		sum += math.Max(0, 1-dev)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ExpiryScore 到期急迫度分數：
// 0.3 × 落在 soon 集合的食材數 + 0.1 × 落在 have 集合的食材數。
// 食材以逗號切開、去空白小寫後做原文比對（非模糊比對）
func ExpiryScore(ingredients string, have, soon map[string]struct{}) float64 {
	score := 0.0
	for _, ing := range strings.Split(ingredients, ",") {
		name := strings.ToLower(strings.TrimSpace(ing))
		if _, ok := soon[name]; ok {
			score += 0.3
		}
		if _, ok := have[name]; ok {
			score += 0.1
		}
	}
	return score
}

// 冒險加分時視為常見而排除的食材子字串
var commonIngredients = []string{
	"salt", "pepper", "water", "oil", "olive oil",
	"sugar", "flour", "garlic", "onion", "butter",
}

// AdventureBonus 冒險加分：adventurous ≤ 5 時為 0；
// 否則統計不含常見子字串的相異食材數 u，
// 加分 = min(0.3, ln(1+u)/10) × (adventurous-5)/5
func AdventureBonus(ingredients string, adventurous int) float64 {
	if adventurous <= 5 {
		return 0
	}
	uncommon := make(map[string]struct{})
	for _, tok := range splitCommaNewline(ingredients) {
		isCommon := false
		for _, c := range commonIngredients {
			if strings.Contains(tok, c) {
				isCommon = true
				break
			}
		}
		if !isCommon {
			uncommon[tok] = struct{}{}
		}
	}
	u := float64(len(uncommon))
	bonus := math.Log1p(u) / 10
	if bonus > 0.3 {
		bonus = 0.3
	}
	return bonus * float64(adventurous-5) / 5
}

// DislikePenalty 只要任一討厭食材子字串出現在食材文字中即扣 0.4
func DislikePenalty(ingredients, dislikesText string) float64 {
	if strings.TrimSpace(dislikesText) == "" {
		return 0
	}
	all := strings.ToLower(ingredients)
	for _, d := range strings.Split(dislikesText, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && strings.Contains(all, d) {
			return -0.4
		}
	}
	return 0
}

// RatingSums 依 recipe_id 加總歷史評分
func RatingSums(ratings []Rating) map[string]int {
	sums := make(map[string]int, len(ratings))
	for _, r := range ratings {
		sums[r.RecipeID] += r.Rating
	}
	return sums
}

// LearnedAdjustment 學習調整：0.1 × 歷史評分總和
func LearnedAdjustment(recipeID string, sums map[string]int) float64 {
	return 0.1 * float64(sums[recipeID])
}

// SaleHint 特價提示（僅顯示用，不影響分數）：
// 取第一筆商品名稱包含任一食材單詞的廣告，
// 格式為 "{store} deal: {price} on {product}"，無價格時顯示 "sale"
func SaleHint(ingredients string, ads []Ad) string {
	if len(ads) == 0 {
		return ""
	}
	words := strings.FieldsFunc(strings.ToLower(ingredients), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for _, ad := range ads {
		prod := strings.ToLower(ad.Product)
		if prod == "" {
			continue
		}
		for _, w := range words {
			if w != "" && strings.Contains(prod, w) {
				price := ad.Price
				if price == "" {
					price = "sale"
				}
				return fmt.Sprintf("%s deal: %s on %s", ad.Store, price, ad.Product)
			}
		}
	}
	return ""
}

// splitCommaNewline 以逗號或換行切開並去空白小寫，丟棄空片段
func splitCommaNewline(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
