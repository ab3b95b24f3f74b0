package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
	"github.com/santhosh-ovd/indian-dishes/server/internal/repository"
	"github.com/santhosh-ovd/indian-dishes/server/internal/service"
	"github.com/santhosh-ovd/indian-dishes/server/pkg/logger"
)

func testDishes() []models.Dish {
	return []models.Dish{
		{ID: "1", Name: "Samosa", Ingredients: "potato, pea", Diet: "vegetarian", PrepTime: 30, CookTime: 30, FlavorProfile: "spicy", Course: "snack", State: "Uttar Pradesh", Region: "North"},
		{ID: "2", Name: "Chicken Curry", Ingredients: "chicken, onion", Diet: "non vegetarian", PrepTime: 15, CookTime: 45, FlavorProfile: "spicy", Course: "main", State: "Punjab", Region: "North"},
		{ID: "3", Name: "Butter chicken", Ingredients: "chicken, butter, cream, red chilli powder", Diet: "non vegetarian", PrepTime: 10, CookTime: 35, FlavorProfile: "spicy", Course: "main", State: "Punjab", Region: "North"},
		{ID: "4", Name: "Gulab jamun", Ingredients: "milk powder, sugar, ghee", Diet: "vegetarian", PrepTime: 15, CookTime: 40, FlavorProfile: "sweet", Course: "dessert", State: "West Bengal", Region: "East"},
	}
}

// setupRouter mounts the dish routes the same way the server does, without auth.
func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	return setupRouterWith(t, testDishes())
}

func setupRouterWith(t *testing.T, dishes []models.Dish) *chi.Mux {
	t.Helper()

	repo, err := repository.NewInMemoryDishRepository(dishes)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	svc := service.NewDishService(repo)
	log := logger.New("error")
	handler := NewDishHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/api/dishes", handler.Routes)
	return r
}

func doRequest(r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeDishes(t *testing.T, w *httptest.ResponseRecorder) []models.Dish {
	t.Helper()

	var dishes []models.Dish
	if err := json.NewDecoder(w.Body).Decode(&dishes); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return dishes
}

func dishNames(dishes []models.Dish) []string {
	names := make([]string, 0, len(dishes))
	for _, d := range dishes {
		names = append(names, d.Name)
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListDishes(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name      string
		query     string
		wantNames []string
		wantTotal int
	}{
		{"defaults", "", []string{"Samosa", "Chicken Curry", "Butter chicken", "Gulab jamun"}, 4},
		{"diet filter", "?diet=vegetarian", []string{"Samosa", "Gulab jamun"}, 2},
		{"course filter ignores case", "?course=MAIN", []string{"Chicken Curry", "Butter chicken"}, 2},
		{"paginated", "?page=2&limit=3", []string{"Gulab jamun"}, 4},
		{"out of range page", "?page=100&limit=10", []string{}, 4},
		{"huge page whose offset wraps to zero", "?page=4611686018427387905&limit=4", []string{}, 4},
		{"huge limit", "?limit=9223372036854775807", []string{"Samosa", "Chicken Curry", "Butter chicken", "Gulab jamun"}, 4},
		{"sort by prep time desc", "?sortBy=prep_time&sortOrder=desc", []string{"Samosa", "Chicken Curry", "Gulab jamun", "Butter chicken"}, 4},
		{"sort by cook time asc", "?sortBy=cook_time", []string{"Samosa", "Butter chicken", "Gulab jamun", "Chicken Curry"}, 4},
		{"unknown sort field ignored", "?sortBy=calories", []string{"Samosa", "Chicken Curry", "Butter chicken", "Gulab jamun"}, 4},
		{"zero page and limit fall back", "?page=0&limit=0", []string{"Samosa", "Chicken Curry", "Butter chicken", "Gulab jamun"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/api/dishes"+tt.query, nil)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var result models.QueryResult
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if result.Data == nil {
				t.Error("expected data to be an array, got null")
			}
			if got := dishNames(result.Data); !equalStrings(got, tt.wantNames) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
			if result.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", result.Total, tt.wantTotal)
			}
		})
	}
}

func TestListDishes_InvalidPagination(t *testing.T) {
	r := setupRouter(t)

	for _, query := range []string{"?page=abc", "?limit=1.5", "?page=1&limit=ten"} {
		t.Run(query, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/api/dishes"+query, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestSearchDishes(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{"missing query", "", []string{}},
		{"blank query", "?query=%20%20", []string{}},
		{"name", "?query=chick", []string{"Chicken Curry", "Butter chicken"}},
		{"state", "?query=bengal", []string{"Gulab jamun"}},
		{"ingredient", "?query=potato", []string{"Samosa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/api/dishes/search"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if got := dishNames(decodeDishes(t, w)); !equalStrings(got, tt.wantNames) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestSearchDishes_EmptyIsArray(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/dishes/search", nil)
	if body := bytes.TrimSpace(w.Body.Bytes()); string(body) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestGetDishByName(t *testing.T) {
	r := setupRouter(t)

	for _, target := range []string{"/api/dishes/Samosa", "/api/dishes/SAMOSA", "/api/dishes/samosa"} {
		t.Run(target, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var dish models.Dish
			if err := json.NewDecoder(w.Body).Decode(&dish); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if dish.ID != "1" {
				t.Errorf("expected dish 1, got %s", dish.ID)
			}
		})
	}

	t.Run("encoded name", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/dishes/chicken%20curry", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
	})
}

func TestGetDishByName_NotFound(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/dishes/nonexistent", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if response["error"] != "Dish not found" {
		t.Errorf("expected error message 'Dish not found', got %s", response["error"])
	}
}

func TestGetDishByID(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/dishes/id/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var dish models.Dish
	if err := json.NewDecoder(w.Body).Decode(&dish); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if dish.Name != "Butter chicken" {
		t.Errorf("expected Butter chicken, got %s", dish.Name)
	}

	w = doRequest(r, http.MethodGet, "/api/dishes/id/99", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestFindPossibleDishes(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantNames  []string
	}{
		{"match", `{"ingredients": ["potato"]}`, http.StatusOK, []string{"Samosa"}},
		{"permissive substring", `{"ingredients": ["chilli"]}`, http.StatusOK, []string{"Butter chicken"}},
		{"either direction", `{"ingredients": ["fresh cream"]}`, http.StatusOK, []string{"Butter chicken"}},
		{"empty list", `{"ingredients": []}`, http.StatusOK, []string{}},
		{"missing ingredients", `{}`, http.StatusBadRequest, nil},
		{"null ingredients", `{"ingredients": null}`, http.StatusBadRequest, nil},
		{"not an array", `{"ingredients": "potato"}`, http.StatusBadRequest, nil},
		{"not strings", `{"ingredients": [1, 2]}`, http.StatusBadRequest, nil},
		{"malformed json", `{"ingredients": [`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/dishes/possible", []byte(tt.body))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			if tt.wantStatus != http.StatusOK {
				var response map[string]string
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if response["error"] != "Invalid ingredients array" {
					t.Errorf("unexpected error message %q", response["error"])
				}
				return
			}

			if got := dishNames(decodeDishes(t, w)); !equalStrings(got, tt.wantNames) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestSearchByIngredients(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/api/dishes/ingredients", []byte(`{"ingredients": ["chicken", "butter"]}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := dishNames(decodeDishes(t, w)); !equalStrings(got, []string{"Butter chicken"}) {
		t.Errorf("names = %v, want [Butter chicken]", got)
	}

	w = doRequest(r, http.MethodPost, "/api/dishes/ingredients", []byte(`{"ingredients": "chicken"}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestAdvancedSearch(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		query     string
		wantNames []string
	}{
		{"", []string{"Samosa", "Chicken Curry", "Butter chicken", "Gulab jamun"}},
		{"?name=CHICKEN&state=punjab", []string{"Chicken Curry", "Butter chicken"}},
		{"?diet=vegetarian&region=north", []string{"Samosa"}},
		{"?flavor_profile=sweet", []string{"Gulab jamun"}},
		{"?flavor_profile=Sweet", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/api/dishes/advanced"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if got := dishNames(decodeDishes(t, w)); !equalStrings(got, tt.wantNames) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestDishesByAttribute(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		target    string
		wantNames []string
	}{
		{"/api/dishes/region/east", []string{"Gulab jamun"}},
		{"/api/dishes/state/PUNJAB", []string{"Chicken Curry", "Butter chicken"}},
		{"/api/dishes/diet/non%20vegetarian", []string{"Chicken Curry", "Butter chicken"}},
		{"/api/dishes/course/Dessert", []string{"Gulab jamun"}},
		{"/api/dishes/region/nowhere", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tt.target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if got := dishNames(decodeDishes(t, w)); !equalStrings(got, tt.wantNames) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestGetDishByName_EscapedNames(t *testing.T) {
	dishes := []models.Dish{
		{ID: "1", Name: "a%25b", Ingredients: "x", Diet: "vegetarian", Course: "snack"},
		{ID: "2", Name: "a%b", Ingredients: "x", Diet: "vegetarian", Course: "snack"},
		{ID: "3", Name: "Dal/Rice", Ingredients: "dal, rice", Diet: "vegetarian", Course: "main"},
		{ID: "4", Name: "Masala dosa", Ingredients: "rice", Diet: "vegetarian", Course: "main"},
	}
	r := setupRouterWith(t, dishes)

	tests := []struct {
		name     string
		target   string
		wantName string
	}{
		{"percent escape decoded once", "/api/dishes/a%2525b", "a%25b"},
		{"single percent escape", "/api/dishes/a%25b", "a%b"},
		{"escaped slash", "/api/dishes/Dal%2FRice", "Dal/Rice"},
		{"escaped space", "/api/dishes/masala%20dosa", "Masala dosa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tt.target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
			}

			var dish models.Dish
			if err := json.NewDecoder(w.Body).Decode(&dish); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if dish.Name != tt.wantName {
				t.Errorf("name = %q, want %q", dish.Name, tt.wantName)
			}
		})
	}
}
