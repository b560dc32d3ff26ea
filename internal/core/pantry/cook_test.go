package pantry

import (
	"errors"
	"testing"
	"time"

	"smart-chef/internal/pkg/common"
)

// memStore 測試用的記憶體持久層
type memStore struct {
	inventory map[string][]InventoryItem
	recipes   map[string][]Recipe
	ratings   map[string][]Rating
	ads       map[string][]Ad
	shopping  map[string][]ShoppingListItem
	cookLog   map[string][]CookLogEntry
	prefs     map[string]Preferences
	goals     map[string]Goals
}

func newMemStore() *memStore {
	return &memStore{
		inventory: make(map[string][]InventoryItem),
		recipes:   make(map[string][]Recipe),
		ratings:   make(map[string][]Rating),
		ads:       make(map[string][]Ad),
		shopping:  make(map[string][]ShoppingListItem),
		cookLog:   make(map[string][]CookLogEntry),
		prefs:     make(map[string]Preferences),
		goals:     make(map[string]Goals),
	}
}

func (m *memStore) LoadInventory(profile string) ([]InventoryItem, error) {
	return append([]InventoryItem(nil), m.inventory[profile]...), nil
}
func (m *memStore) SaveInventory(profile string, items []InventoryItem) error {
	m.inventory[profile] = append([]InventoryItem(nil), items...)
	return nil
}
func (m *memStore) LoadRecipes(profile string) ([]Recipe, error) {
	return append([]Recipe(nil), m.recipes[profile]...), nil
}
func (m *memStore) SaveRecipes(profile string, recipes []Recipe) error {
	m.recipes[profile] = append([]Recipe(nil), recipes...)
	return nil
}
func (m *memStore) LoadRatings(profile string) ([]Rating, error) {
	return append([]Rating(nil), m.ratings[profile]...), nil
}
func (m *memStore) SaveRatings(profile string, ratings []Rating) error {
	m.ratings[profile] = append([]Rating(nil), ratings...)
	return nil
}
func (m *memStore) LoadAds(profile string) ([]Ad, error) {
	return append([]Ad(nil), m.ads[profile]...), nil
}
func (m *memStore) SaveAds(profile string, ads []Ad) error {
	m.ads[profile] = append([]Ad(nil), ads...)
	return nil
}
func (m *memStore) LoadShoppingList(profile string) ([]ShoppingListItem, error) {
	return append([]ShoppingListItem(nil), m.shopping[profile]...), nil
}
func (m *memStore) SaveShoppingList(profile string, items []ShoppingListItem) error {
	m.shopping[profile] = append([]ShoppingListItem(nil), items...)
	return nil
}
func (m *memStore) LoadCookLog(profile string) ([]CookLogEntry, error) {
	return append([]CookLogEntry(nil), m.cookLog[profile]...), nil
}
func (m *memStore) SaveCookLog(profile string, entries []CookLogEntry) error {
	m.cookLog[profile] = append([]CookLogEntry(nil), entries...)
	return nil
}
func (m *memStore) LoadPreferences(profile string) (Preferences, error) {
	if p, ok := m.prefs[profile]; ok {
		return p, nil
	}
	return DefaultPreferences(), nil
}
func (m *memStore) SavePreferences(profile string, prefs Preferences) error {
	m.prefs[profile] = prefs
	return nil
}
func (m *memStore) LoadGoals(profile string) (Goals, error) {
	if g, ok := m.goals[profile]; ok {
		return g, nil
	}
	return DefaultGoals(), nil
}
func (m *memStore) SaveGoals(profile string, goals Goals) error {
	m.goals[profile] = goals
	return nil
}

func testRecipe() Recipe {
	return Recipe{
		ID:          "r1",
		Title:       "Chicken and Rice",
		Ingredients: "1 chicken breast, 1 cup rice",
		Servings:    2,
	}
}

func testInventory() []InventoryItem {
	return []InventoryItem{
		{ID: "i1", Name: "chicken breast", Quantity: 2, Unit: "pcs"},
		{ID: "i2", Name: "rice", Quantity: 3, Unit: "cups"},
	}
}

func TestCookDecrementsInventory(t *testing.T) {
	store := newMemStore()
	store.inventory["default"] = testInventory()
	svc := NewCookService(store, 0)

	result, err := svc.Cook("default", testRecipe(), 2, false, time.Now())
	if err != nil {
		t.Fatalf("Cook failed: %v", err)
	}
	if len(result.Changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(result.Changes))
	}

	inv, _ := store.LoadInventory("default")
	if inv[0].Quantity != 1 {
		t.Errorf("chicken breast quantity = %v, want 1", inv[0].Quantity)
	}
	if inv[1].Quantity != 2 {
		t.Errorf("rice quantity = %v, want 2", inv[1].Quantity)
	}

	log, _ := store.LoadCookLog("default")
	if len(log) != 1 {
		t.Fatalf("cook log has %d entries, want 1", len(log))
	}
	if log[0].RecipeID != "r1" {
		t.Errorf("cook log recipe id = %q, want r1", log[0].RecipeID)
	}
	if svc.LastCookTS("default") != log[0].TS {
		t.Error("undo pointer does not reference the logged transaction")
	}
}

func TestCookScalesServings(t *testing.T) {
	store := newMemStore()
	store.inventory["default"] = testInventory()
	svc := NewCookService(store, 0)

	// 食譜基準 2 份，煮 4 份 → 扣減量加倍
	if _, err := svc.Cook("default", testRecipe(), 4, false, time.Now()); err != nil {
		t.Fatalf("Cook failed: %v", err)
	}

	inv, _ := store.LoadInventory("default")
	if inv[0].Quantity != 0 {
		t.Errorf("chicken breast quantity = %v, want 0", inv[0].Quantity)
	}
	if inv[1].Quantity != 1 {
		t.Errorf("rice quantity = %v, want 1", inv[1].Quantity)
	}
}

func TestCookEmptyInventoryRejected(t *testing.T) {
	store := newMemStore()
	svc := NewCookService(store, 0)

	_, err := svc.Cook("default", testRecipe(), 2, false, time.Now())
	if !errors.Is(err, common.ErrEmptyInventory) {
		t.Fatalf("got error %v, want ErrEmptyInventory", err)
	}
	if log, _ := store.LoadCookLog("default"); len(log) != 0 {
		t.Error("cook log written despite rejected transaction")
	}
}

func TestCookAutoShoppingListOnZero(t *testing.T) {
	store := newMemStore()
	store.inventory["default"] = []InventoryItem{
		{ID: "i1", Name: "rice", Quantity: 1, Unit: "cups"},
	}
	recipe := Recipe{ID: "r2", Title: "Plain Rice", Ingredients: "1 cup rice", Servings: 1}
	svc := NewCookService(store, 0)

	result, err := svc.Cook("default", recipe, 1, true, time.Now())
	if err != nil {
		t.Fatalf("Cook failed: %v", err)
	}
	if len(result.Zeroed) != 1 || result.Zeroed[0] != "rice" {
		t.Fatalf("zeroed = %v, want [rice]", result.Zeroed)
	}

	list, _ := store.LoadShoppingList("default")
	if len(list) != 1 {
		t.Fatalf("shopping list has %d items, want 1", len(list))
	}
	if list[0].Product != "rice" || list[0].Note != "auto-added (hit zero)" {
		t.Errorf("unexpected shopping list item: %+v", list[0])
	}
}

func TestCookSkipsUnmatchedIngredients(t *testing.T) {
	store := newMemStore()
	store.inventory["default"] = []InventoryItem{
		{ID: "i1", Name: "rice", Quantity: 3, Unit: "cups"},
	}
	recipe := Recipe{ID: "r3", Title: "Exotic", Ingredients: "1 cup rice, 2 dragonfruit", Servings: 1}
	svc := NewCookService(store, 0)

	result, err := svc.Cook("default", recipe, 1, false, time.Now())
	if err != nil {
		t.Fatalf("Cook failed: %v", err)
	}
	if len(result.Changes) != 1 {
		t.Fatalf("got %d changes, want 1 (unmatched line skipped)", len(result.Changes))
	}
	if result.Changes[0].Name != "rice" {
		t.Errorf("changed item = %q, want rice", result.Changes[0].Name)
	}
}

func TestUndoRestoresInventory(t *testing.T) {
	store := newMemStore()
	store.inventory["default"] = testInventory()
	svc := NewCookService(store, 0)

	if _, err := svc.Cook("default", testRecipe(), 2, false, time.Now()); err != nil {
		t.Fatalf("Cook failed: %v", err)
	}

	entry, err := svc.Undo("default")
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if entry.RecipeID != "r1" {
		t.Errorf("undone recipe id = %q, want r1", entry.RecipeID)
	}

	inv, _ := store.LoadInventory("default")
	if inv[0].Quantity != 2 || inv[1].Quantity != 3 {
		t.Errorf("inventory not restored: %v / %v", inv[0].Quantity, inv[1].Quantity)
	}
	if log, _ := store.LoadCookLog("default"); len(log) != 0 {
		t.Error("cook log entry not removed after undo")
	}
	if svc.LastCookTS("default") != "" {
		t.Error("undo pointer not cleared")
	}
}

func TestUndoWithoutCookIsNoop(t *testing.T) {
	store := newMemStore()
	store.inventory["default"] = testInventory()
	svc := NewCookService(store, 0)

	_, err := svc.Undo("default")
	if !errors.Is(err, common.ErrNothingToUndo) {
		t.Fatalf("got error %v, want ErrNothingToUndo", err)
	}

	inv, _ := store.LoadInventory("default")
	if inv[0].Quantity != 2 || inv[1].Quantity != 3 {
		t.Error("inventory changed by no-op undo")
	}
}

func TestUndoOnlyCoversLatestCook(t *testing.T) {
	store := newMemStore()
	store.inventory["default"] = testInventory()
	svc := NewCookService(store, 0)

	if _, err := svc.Cook("default", testRecipe(), 2, false, time.Now()); err != nil {
		t.Fatalf("first Cook failed: %v", err)
	}
	if _, err := svc.Cook("default", testRecipe(), 2, false, time.Now().Add(time.Second)); err != nil {
		t.Fatalf("second Cook failed: %v", err)
	}

	if _, err := svc.Undo("default"); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	// 單槽指標：第二次復原沒有目標
	if _, err := svc.Undo("default"); !errors.Is(err, common.ErrNothingToUndo) {
		t.Fatalf("second undo got %v, want ErrNothingToUndo", err)
	}

	log, _ := store.LoadCookLog("default")
	if len(log) != 1 {
		t.Errorf("cook log has %d entries, want 1 (first transaction kept)", len(log))
	}
}
