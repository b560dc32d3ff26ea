// Package pantry 實作庫存導向的晚餐推薦引擎：
// 多因子評分、偏好過濾、單位感知的庫存扣減與單槽復原交易
package pantry

import (
	"strings"
	"time"
)

// Status 依剩餘天數推導的庫存狀態
type Status string

const (
	StatusExpired Status = "Expired"
	StatusUrgent  Status = "Urgent (≤2d)"
	StatusSoon    Status = "Soon (≤7d)"
	StatusOK      Status = "OK"
	StatusNA      Status = "N/A"
)

// InventoryItem 庫存品項。數量永不為負；品項不會被自動刪除
type InventoryItem struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	Location    string     `json:"location"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	PurchasedOn *time.Time `json:"purchased_on,omitempty"`
	ExpiresOn   *time.Time `json:"expires_on,omitempty"`
	Barcode     string     `json:"barcode"`
	Notes       string     `json:"notes"`
}

// DaysLeft 到期剩餘天數；無到期日時 ok 為 false
func (it InventoryItem) DaysLeft(today time.Time) (int, bool) {
	if it.ExpiresOn == nil {
		return 0, false
	}
	t := truncateToDay(today)
	e := truncateToDay(*it.ExpiresOn)
	return int(e.Sub(t).Hours() / 24), true
}

// StatusOn 品項在指定日期的狀態
func (it InventoryItem) StatusOn(today time.Time) Status {
	days, ok := it.DaysLeft(today)
	if !ok {
		return StatusNA
	}
	switch {
	case days < 0:
		return StatusExpired
	case days <= 2:
		return StatusUrgent
	case days <= 7:
		return StatusSoon
	default:
		return StatusOK
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Recipe 食譜；單次會話內不可變，巨量營養欄位可能缺漏（缺漏時由關鍵字表估算）
type Recipe struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Ingredients        string   `json:"ingredients"` // 逗號分隔的自由文字
	Steps              string   `json:"steps"`
	Tags               string   `json:"tags"` // 逗號分隔的自由文字
	Image              string   `json:"image"`
	CaloriesPerServing *float64 `json:"calories_per_serving,omitempty"`
	ProteinG           *float64 `json:"protein_g,omitempty"`
	CarbsG             *float64 `json:"carbs_g,omitempty"`
	FatG               *float64 `json:"fat_g,omitempty"`
	Servings           int      `json:"servings"`
	MealType           string   `json:"meal_type"`
}

// Rating 評分紀錄；只追加，依 recipe_id 加總
type Rating struct {
	RecipeID string `json:"recipe_id"`
	Rating   int    `json:"rating"` // +1 或 -1
	TS       string `json:"ts"`
}

// DietPrefs 飲食限制開關
type DietPrefs struct {
	GlutenFree bool `json:"gluten_free"`
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	DairyFree  bool `json:"dairy_free"`
}

// AllergenPrefs 過敏原開關
type AllergenPrefs struct {
	Peanuts   bool `json:"peanuts"`
	TreeNuts  bool `json:"tree_nuts"`
	Soy       bool `json:"soy"`
	Dairy     bool `json:"dairy"`
	Eggs      bool `json:"eggs"`
	Fish      bool `json:"fish"`
	Shellfish bool `json:"shellfish"`
	Sesame    bool `json:"sesame"`
	Wheat     bool `json:"wheat"`
}

// Preferences 使用者偏好設定
type Preferences struct {
	Diet      DietPrefs     `json:"diet"`
	Allergens AllergenPrefs `json:"allergens"`
}

// DefaultPreferences 首次使用的預設偏好：所有開關皆關閉
func DefaultPreferences() Preferences {
	return Preferences{}
}

// 碳水偏好
const (
	CarbPrefLower    = "lower-carb"
	CarbPrefBalanced = "balanced"
	CarbPrefHigher   = "higher-carb"
)

// Goals 營養目標設定
type Goals struct {
	DailyCalorieTarget int    `json:"daily_calorie_target"`
	CarbPref           string `json:"carb_pref"`
	Adventurous        int    `json:"adventurous"` // 0–10
	Dislikes           string `json:"dislikes"`    // 逗號分隔的自由文字
}

// DefaultGoals 首次使用的預設目標
func DefaultGoals() Goals {
	return Goals{
		DailyCalorieTarget: 2000,
		CarbPref:           CarbPrefBalanced,
		Adventurous:        6,
		Dislikes:           "",
	}
}

// Ad 特價／廣告參考資料，唯讀
type Ad struct {
	Store    string     `json:"store"`
	Product  string     `json:"product"`
	Brand    string     `json:"brand"`
	Category string     `json:"category"`
	Price    string     `json:"price"`
	Unit     string     `json:"unit"`
	SaleEnd  *time.Time `json:"sale_end,omitempty"`
	IsNew    bool       `json:"is_new"`
	Tags     string     `json:"tags"`
}

// CookChange 單一品項的扣減紀錄，delta 為帶號變化量（扣減為負）
type CookChange struct {
	Name  string  `json:"name"`
	Prev  float64 `json:"prev"`
	New   float64 `json:"new"`
	Delta float64 `json:"delta"`
	Unit  string  `json:"unit"`
}

// CookLogEntry 烹飪交易紀錄；ts 同時作為交易識別碼。
// 只有最新一筆可被復原（單槽復原指標，非堆疊）
type CookLogEntry struct {
	TS          string       `json:"ts"`
	RecipeID    string       `json:"recipe_id"`
	RecipeTitle string       `json:"recipe_title"`
	Changes     []CookChange `json:"changes"`
}

// ShoppingListItem 購物清單項目
type ShoppingListItem struct {
	Store   string  `json:"store"`
	Product string  `json:"product"`
	Qty     float64 `json:"qty"`
	Note    string  `json:"note"`
}

// Store 外部持久層協作者。Load 在資源不存在或為空時回傳空序列，
// Save 為整表覆寫並視需要建立上層儲存
type Store interface {
	LoadInventory(profile string) ([]InventoryItem, error)
	SaveInventory(profile string, items []InventoryItem) error

	LoadRecipes(profile string) ([]Recipe, error)
	SaveRecipes(profile string, recipes []Recipe) error

	LoadRatings(profile string) ([]Rating, error)
	SaveRatings(profile string, ratings []Rating) error

	LoadAds(profile string) ([]Ad, error)
	SaveAds(profile string, ads []Ad) error

	LoadShoppingList(profile string) ([]ShoppingListItem, error)
	SaveShoppingList(profile string, items []ShoppingListItem) error

	LoadCookLog(profile string) ([]CookLogEntry, error)
	SaveCookLog(profile string, entries []CookLogEntry) error

	LoadPreferences(profile string) (Preferences, error)
	SavePreferences(profile string, prefs Preferences) error

	LoadGoals(profile string) (Goals, error)
	SaveGoals(profile string, goals Goals) error
}

// HaveSoonSets 由庫存推導名稱集合：
// have 為數量大於 0 的品項名稱，soon 為狀態為 Urgent 或 Soon 的品項名稱。
// 名稱以去空白小寫後的原文比對（非模糊比對）
func HaveSoonSets(items []InventoryItem, today time.Time) (have, soon map[string]struct{}) {
	have = make(map[string]struct{})
	soon = make(map[string]struct{})
	for _, it := range items {
		name := strings.ToLower(strings.TrimSpace(it.Name))
		if name == "" {
			continue
		}
		if it.Quantity > 0 {
			have[name] = struct{}{}
		}
		switch it.StatusOn(today) {
		case StatusUrgent, StatusSoon:
			soon[name] = struct{}{}
		}
	}
	return have, soon
}
