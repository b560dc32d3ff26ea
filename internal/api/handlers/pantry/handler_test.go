package pantry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	corepantry "smart-chef/internal/core/pantry"
	"smart-chef/internal/infrastructure/adfeed"

	"github.com/gin-gonic/gin"
)

// stubStore 測試用的記憶體持久層
type stubStore struct {
	inventory []corepantry.InventoryItem
	recipes   []corepantry.Recipe
	ratings   []corepantry.Rating
	ads       []corepantry.Ad
	shopping  []corepantry.ShoppingListItem
	cookLog   []corepantry.CookLogEntry
	prefs     *corepantry.Preferences
	goals     *corepantry.Goals
}

func (s *stubStore) LoadInventory(string) ([]corepantry.InventoryItem, error) {
	return s.inventory, nil
}
func (s *stubStore) SaveInventory(_ string, items []corepantry.InventoryItem) error {
	s.inventory = items
	return nil
}
func (s *stubStore) LoadRecipes(string) ([]corepantry.Recipe, error) { return s.recipes, nil }
func (s *stubStore) SaveRecipes(_ string, recipes []corepantry.Recipe) error {
	s.recipes = recipes
	return nil
}
func (s *stubStore) LoadRatings(string) ([]corepantry.Rating, error) { return s.ratings, nil }
func (s *stubStore) SaveRatings(_ string, ratings []corepantry.Rating) error {
	s.ratings = ratings
	return nil
}
func (s *stubStore) LoadAds(string) ([]corepantry.Ad, error) { return s.ads, nil }
func (s *stubStore) SaveAds(_ string, ads []corepantry.Ad) error {
	s.ads = ads
	return nil
}
func (s *stubStore) LoadShoppingList(string) ([]corepantry.ShoppingListItem, error) {
	return s.shopping, nil
}
func (s *stubStore) SaveShoppingList(_ string, items []corepantry.ShoppingListItem) error {
	s.shopping = items
	return nil
}
func (s *stubStore) LoadCookLog(string) ([]corepantry.CookLogEntry, error) { return s.cookLog, nil }
func (s *stubStore) SaveCookLog(_ string, entries []corepantry.CookLogEntry) error {
	s.cookLog = entries
	return nil
}
func (s *stubStore) LoadPreferences(string) (corepantry.Preferences, error) {
	if s.prefs != nil {
		return *s.prefs, nil
	}
	return corepantry.DefaultPreferences(), nil
}
func (s *stubStore) SavePreferences(_ string, prefs corepantry.Preferences) error {
	s.prefs = &prefs
	return nil
}
func (s *stubStore) LoadGoals(string) (corepantry.Goals, error) {
	if s.goals != nil {
		return *s.goals, nil
	}
	return corepantry.DefaultGoals(), nil
}
func (s *stubStore) SaveGoals(_ string, goals corepantry.Goals) error {
	s.goals = &goals
	return nil
}

func newTestRouter(store corepantry.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cookSvc := corepantry.NewCookService(store, 0)
	recommendSvc := corepantry.NewRecommendService(store, 0, corepantry.RankOptions{})
	adClient := adfeed.NewClient("", time.Second, time.Minute)
	h := NewHandler(store, cookSvc, recommendSvc, adClient)

	router := gin.New()
	g := router.Group("/api/v1/profiles/:profile")
	g.GET("/recommendations", h.HandleRecommendations)
	g.GET("/inventory", h.HandleListInventory)
	g.POST("/inventory", h.HandleAddInventory)
	g.POST("/ratings", h.HandleRate)
	g.POST("/cook", h.HandleCook)
	g.POST("/cook/undo", h.HandleUndoCook)
	g.GET("/goals", h.HandleGetGoals)
	g.PUT("/goals", h.HandlePutGoals)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleCookEmptyInventoryConflict(t *testing.T) {
	store := &stubStore{
		recipes: []corepantry.Recipe{{ID: "r1", Title: "Rice", Ingredients: "1 cup rice", Servings: 1}},
	}
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodPost, "/api/v1/profiles/default/cook",
		`{"recipe_id":"r1","servings":1}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestHandleCookUnknownRecipe(t *testing.T) {
	store := &stubStore{
		inventory: []corepantry.InventoryItem{{Name: "rice", Quantity: 3, Unit: "cups"}},
	}
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodPost, "/api/v1/profiles/default/cook",
		`{"recipe_id":"nope"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", w.Code, w.Body.String())
	}
}

func TestHandleCookAndUndoFlow(t *testing.T) {
	store := &stubStore{
		inventory: []corepantry.InventoryItem{{Name: "rice", Quantity: 3, Unit: "cups"}},
		recipes:   []corepantry.Recipe{{ID: "r1", Title: "Rice", Ingredients: "1 cup rice", Servings: 1}},
	}
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodPost, "/api/v1/profiles/default/cook",
		`{"recipe_id":"r1","servings":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("cook status = %d, body %s", w.Code, w.Body.String())
	}
	if store.inventory[0].Quantity != 2 {
		t.Errorf("rice quantity after cook = %v, want 2", store.inventory[0].Quantity)
	}

	w = doRequest(t, router, http.MethodPost, "/api/v1/profiles/default/cook/undo", "")
	if w.Code != http.StatusOK {
		t.Fatalf("undo status = %d, body %s", w.Code, w.Body.String())
	}
	if store.inventory[0].Quantity != 3 {
		t.Errorf("rice quantity after undo = %v, want 3", store.inventory[0].Quantity)
	}

	// 指標已清空，再復原是可見的 no-op
	w = doRequest(t, router, http.MethodPost, "/api/v1/profiles/default/cook/undo", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second undo status = %d, want 404", w.Code)
	}
}

func TestHandleRateValidation(t *testing.T) {
	router := newTestRouter(&stubStore{})

	w := doRequest(t, router, http.MethodPost, "/api/v1/profiles/default/ratings",
		`{"recipe_id":"r1","rating":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/v1/profiles/default/ratings",
		`{"recipe_id":"r1","rating":-1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
}

func TestHandleListInventoryDerivedFields(t *testing.T) {
	expires := time.Now().UTC().AddDate(0, 0, 1)
	store := &stubStore{
		inventory: []corepantry.InventoryItem{
			{Name: "chicken breast", Quantity: 2, Unit: "pcs", ExpiresOn: &expires},
		},
	}
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodGet, "/api/v1/profiles/default/inventory", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Items []struct {
			Name     string `json:"name"`
			DaysLeft *int   `json:"days_left"`
			Status   string `json:"status"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Items))
	}
	if resp.Items[0].DaysLeft == nil || *resp.Items[0].DaysLeft != 1 {
		t.Errorf("days_left = %v, want 1", resp.Items[0].DaysLeft)
	}
	if resp.Items[0].Status != string(corepantry.StatusUrgent) {
		t.Errorf("status = %q, want %q", resp.Items[0].Status, corepantry.StatusUrgent)
	}
}

func TestHandlePutGoalsValidation(t *testing.T) {
	router := newTestRouter(&stubStore{})

	w := doRequest(t, router, http.MethodPut, "/api/v1/profiles/default/goals",
		`{"daily_calorie_target":1800,"carb_pref":"keto","adventurous":6}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status for bad carb_pref = %d, want 400", w.Code)
	}

	w = doRequest(t, router, http.MethodPut, "/api/v1/profiles/default/goals",
		`{"daily_calorie_target":1800,"carb_pref":"lower-carb","adventurous":6}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}
