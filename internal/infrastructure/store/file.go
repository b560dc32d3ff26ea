// Package store 提供 pantry.Store 的持久層實作：
// file 後端為每個 profile 一個目錄的 CSV／JSON 檔，
// redis 後端為每個 profile:table 一個 JSON 文件
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"smart-chef/internal/core/pantry"
	"smart-chef/internal/pkg/common"
)

// logStoreFallback 記錄持久層讀取降級；兩個後端共用
func logStoreFallback(profile, table string, err error) {
	common.LogStoreFallback(profile, table, err)
}

// 資料表檔名
const (
	fileInventory    = "inventory.csv"
	fileRecipes      = "recipes.csv"
	fileRatings      = "ratings.csv"
	fileAds          = "ads.csv"
	fileShoppingList = "shopping_list.csv"
	fileCookLog      = "cooked_log.csv"
	filePreferences  = "prefs.json"
	fileGoals        = "goals.json"
)

// FileStore 以 CSV 資料表落地的持久層。
// 檔案不存在或無法解析時回傳空表／預設值，Save 為整表覆寫
type FileStore struct {
	dataDir string
	mu      sync.RWMutex
}

// NewFileStore 創建檔案持久層
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{dataDir: dataDir}
}

func (s *FileStore) path(profile, name string) string {
	return filepath.Join(s.dataDir, profile, name)
}

// readTable 讀取 CSV 資料表並跳過標題列；
// 檔案不存在視為空表，解析失敗記錄後同樣回傳空表
func (s *FileStore) readTable(profile, name string) [][]string {
	f, err := os.Open(s.path(profile, name))
	if err != nil {
		if !os.IsNotExist(err) {
			logStoreFallback(profile, name, err)
		}
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		logStoreFallback(profile, name, err)
		return nil
	}
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

// writeTable 整表覆寫 CSV 資料表，必要時建立 profile 目錄
func (s *FileStore) writeTable(profile, name string, header []string, rows [][]string) error {
	dir := filepath.Join(s.dataDir, profile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write table %s: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write table %s: %w", name, err)
	}
	w.Flush()
	return w.Error()
}

// LoadInventory 讀取庫存表
func (s *FileStore) LoadInventory(profile string) ([]pantry.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []pantry.InventoryItem
	for _, row := range s.readTable(profile, fileInventory) {
		if len(row) < 11 {
			continue
		}
		items = append(items, pantry.InventoryItem{
			ID:          row[0],
			Name:        row[1],
			Category:    row[2],
			Subcategory: row[3],
			Location:    row[4],
			Quantity:    parseFloat(row[5]),
			Unit:        row[6],
			PurchasedOn: parseDate(row[7]),
			ExpiresOn:   parseDate(row[8]),
			Barcode:     row[9],
			Notes:       row[10],
		})
	}
	return items, nil
}

// SaveInventory 整表覆寫庫存表
func (s *FileStore) SaveInventory(profile string, items []pantry.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := []string{"id", "name", "category", "subcategory", "location",
		"quantity", "unit", "purchased_on", "expires_on", "barcode", "notes"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID, it.Name, it.Category, it.Subcategory, it.Location,
			fmtFloat(it.Quantity), it.Unit, fmtDate(it.PurchasedOn), fmtDate(it.ExpiresOn),
			it.Barcode, it.Notes,
		})
	}
	return s.writeTable(profile, fileInventory, header, rows)
}

// LoadRecipes 讀取食譜表
func (s *FileStore) LoadRecipes(profile string) ([]pantry.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recipes []pantry.Recipe
	for _, row := range s.readTable(profile, fileRecipes) {
		if len(row) < 12 {
			continue
		}
		recipes = append(recipes, pantry.Recipe{
			ID:                 row[0],
			Title:              row[1],
			Ingredients:        row[2],
			Steps:              row[3],
			Tags:               row[4],
			Image:              row[5],
			CaloriesPerServing: parseFloatPtr(row[6]),
			ProteinG:           parseFloatPtr(row[7]),
			CarbsG:             parseFloatPtr(row[8]),
			FatG:               parseFloatPtr(row[9]),
			Servings:           parseInt(row[10]),
			MealType:           row[11],
		})
	}
	return recipes, nil
}

// SaveRecipes 整表覆寫食譜表
func (s *FileStore) SaveRecipes(profile string, recipes []pantry.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := []string{"id", "title", "ingredients", "steps", "tags", "image",
		"calories_per_serving", "protein_g", "carbs_g", "fat_g", "servings", "meal_type"}
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, []string{
			r.ID, r.Title, r.Ingredients, r.Steps, r.Tags, r.Image,
			fmtFloatPtr(r.CaloriesPerServing), fmtFloatPtr(r.ProteinG),
			fmtFloatPtr(r.CarbsG), fmtFloatPtr(r.FatG),
			strconv.Itoa(r.Servings), r.MealType,
		})
	}
	return s.writeTable(profile, fileRecipes, header, rows)
}

// LoadRatings 讀取評分表
func (s *FileStore) LoadRatings(profile string) ([]pantry.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ratings []pantry.Rating
	for _, row := range s.readTable(profile, fileRatings) {
		if len(row) < 3 {
			continue
		}
		ratings = append(ratings, pantry.Rating{
			RecipeID: row[0],
			Rating:   parseInt(row[1]),
			TS:       row[2],
		})
	}
	return ratings, nil
}

// SaveRatings 整表覆寫評分表
func (s *FileStore) SaveRatings(profile string, ratings []pantry.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := []string{"recipe_id", "rating", "ts"}
	rows := make([][]string, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, []string{r.RecipeID, strconv.Itoa(r.Rating), r.TS})
	}
	return s.writeTable(profile, fileRatings, header, rows)
}

// LoadAds 讀取特價廣告表
func (s *FileStore) LoadAds(profile string) ([]pantry.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ads []pantry.Ad
	for _, row := range s.readTable(profile, fileAds) {
		if len(row) < 9 {
			continue
		}
		ads = append(ads, pantry.Ad{
			Store:    row[0],
			Product:  row[1],
			Brand:    row[2],
			Category: row[3],
			Price:    row[4],
			Unit:     row[5],
			SaleEnd:  parseDate(row[6]),
			IsNew:    row[7] == "true",
			Tags:     row[8],
		})
	}
	return ads, nil
}

// SaveAds 整表覆寫特價廣告表
func (s *FileStore) SaveAds(profile string, ads []pantry.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := []string{"store", "product", "brand", "category", "price", "unit",
		"sale_end", "is_new", "tags"}
	rows := make([][]string, 0, len(ads))
	for _, a := range ads {
		rows = append(rows, []string{
			a.Store, a.Product, a.Brand, a.Category, a.Price, a.Unit,
			fmtDate(a.SaleEnd), strconv.FormatBool(a.IsNew), a.Tags,
		})
	}
	return s.writeTable(profile, fileAds, header, rows)
}

// LoadShoppingList 讀取購物清單
func (s *FileStore) LoadShoppingList(profile string) ([]pantry.ShoppingListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []pantry.ShoppingListItem
	for _, row := range s.readTable(profile, fileShoppingList) {
		if len(row) < 4 {
			continue
		}
		items = append(items, pantry.ShoppingListItem{
			Store:   row[0],
			Product: row[1],
			Qty:     parseFloat(row[2]),
			Note:    row[3],
		})
	}
	return items, nil
}

// SaveShoppingList 整表覆寫購物清單
func (s *FileStore) SaveShoppingList(profile string, items []pantry.ShoppingListItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := []string{"store", "product", "qty", "note"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.Store, it.Product, fmtFloat(it.Qty), it.Note})
	}
	return s.writeTable(profile, fileShoppingList, header, rows)
}

// LoadCookLog 讀取烹飪紀錄；changes 以 JSON 內嵌在單一欄位，
// 無法解析的紀錄保留其餘欄位但 changes 為空
func (s *FileStore) LoadCookLog(profile string) ([]pantry.CookLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []pantry.CookLogEntry
	for _, row := range s.readTable(profile, fileCookLog) {
		if len(row) < 4 {
			continue
		}
		entry := pantry.CookLogEntry{
			TS:          row[0],
			RecipeID:    row[1],
			RecipeTitle: row[2],
		}
		if row[3] != "" {
			if err := json.Unmarshal([]byte(row[3]), &entry.Changes); err != nil {
				logStoreFallback(profile, fileCookLog, err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SaveCookLog 整表覆寫烹飪紀錄
func (s *FileStore) SaveCookLog(profile string, entries []pantry.CookLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := []string{"ts", "recipe_id", "recipe_title", "changes_json"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		changes, err := json.Marshal(e.Changes)
		if err != nil {
			return fmt.Errorf("marshal cook log changes: %w", err)
		}
		rows = append(rows, []string{e.TS, e.RecipeID, e.RecipeTitle, string(changes)})
	}
	return s.writeTable(profile, fileCookLog, header, rows)
}

// LoadPreferences 讀取偏好設定；檔案不存在或無法解析時回傳預設值
func (s *FileStore) LoadPreferences(profile string) (pantry.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs := pantry.DefaultPreferences()
	data, err := os.ReadFile(s.path(profile, filePreferences))
	if err != nil {
		if !os.IsNotExist(err) {
			logStoreFallback(profile, filePreferences, err)
		}
		return prefs, nil
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		logStoreFallback(profile, filePreferences, err)
		return pantry.DefaultPreferences(), nil
	}
	return prefs, nil
}

// SavePreferences 覆寫偏好設定
func (s *FileStore) SavePreferences(profile string, prefs pantry.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(profile, filePreferences, prefs)
}

// LoadGoals 讀取營養目標；檔案不存在或無法解析時回傳預設值
func (s *FileStore) LoadGoals(profile string) (pantry.Goals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := pantry.DefaultGoals()
	data, err := os.ReadFile(s.path(profile, fileGoals))
	if err != nil {
		if !os.IsNotExist(err) {
			logStoreFallback(profile, fileGoals, err)
		}
		return goals, nil
	}
	if err := json.Unmarshal(data, &goals); err != nil {
		logStoreFallback(profile, fileGoals, err)
		return pantry.DefaultGoals(), nil
	}
	return goals, nil
}

// SaveGoals 覆寫營養目標
func (s *FileStore) SaveGoals(profile string, goals pantry.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(profile, fileGoals, goals)
}

func (s *FileStore) writeJSON(profile, name string, v interface{}) error {
	dir := filepath.Join(s.dataDir, profile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// 欄位轉換工具：空字串與無法解析的值一律降級為零值／nil

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
