package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
	"github.com/dukerupert/mealplanner/internal/planner"
)

var testNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)

type testEnv struct {
	store *planner.Store
	mux   *http.ServeMux
}

// setupTestEnv registers every handler on a fresh mux backed by an empty store.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := planner.NewStore(planner.WithClock(func() time.Time { return testNow }), planner.WithLogger(logger))

	stateH := NewStateHandler(st, logger)
	recipeH := NewRecipeHandler(st)
	planH := NewMealPlanHandler(st)
	listH := NewShoppingListHandler(st)
	for _, h := range []*func() time.Time{&recipeH.now, &planH.now, &listH.now} {
		*h = func() time.Time { return testNow }
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", stateH.Get)
	mux.HandleFunc("POST /api/actions", stateH.Dispatch)
	mux.HandleFunc("PUT /api/selected-date", stateH.SetSelectedDate)
	mux.HandleFunc("GET /api/dashboard", stateH.Dashboard)
	mux.HandleFunc("GET /api/recipes", recipeH.List)
	mux.HandleFunc("POST /api/recipes", recipeH.Create)
	mux.HandleFunc("GET /api/recipes/{id}", recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", recipeH.Delete)
	mux.HandleFunc("GET /api/meal-plans", planH.List)
	mux.HandleFunc("POST /api/meal-plans", planH.Create)
	mux.HandleFunc("GET /api/meal-plans/{id}", planH.Get)
	mux.HandleFunc("PUT /api/meal-plans/{id}", planH.Update)
	mux.HandleFunc("DELETE /api/meal-plans/{id}", planH.Delete)
	mux.HandleFunc("GET /api/meal-plans/current", planH.GetCurrent)
	mux.HandleFunc("PUT /api/meal-plans/current", planH.SetCurrent)
	mux.HandleFunc("DELETE /api/meal-plans/current", planH.ClearCurrent)
	mux.HandleFunc("POST /api/meal-plans/current/meals", planH.AddMeal)
	mux.HandleFunc("PUT /api/meal-plans/current/meals/{id}", planH.UpdateMeal)
	mux.HandleFunc("DELETE /api/meal-plans/current/meals/{id}", planH.DeleteMeal)
	mux.HandleFunc("GET /api/meals", planH.MealsOn)
	mux.HandleFunc("GET /api/meals/week", planH.Week)
	mux.HandleFunc("GET /api/shopping-lists", listH.List)
	mux.HandleFunc("POST /api/shopping-lists", listH.Create)
	mux.HandleFunc("GET /api/shopping-lists/{id}", listH.Get)
	mux.HandleFunc("PUT /api/shopping-lists/{id}", listH.Update)
	mux.HandleFunc("DELETE /api/shopping-lists/{id}", listH.Delete)
	mux.HandleFunc("POST /api/shopping-lists/{id}/items/{item_id}/purchase", listH.TogglePurchased)
	mux.HandleFunc("GET /api/shopping-lists/{id}/summary", listH.Summary)

	return &testEnv{store: st, mux: mux}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	case []byte:
		r = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func (e *testEnv) createRecipe(t *testing.T, name string, calories float64) model.Recipe {
	t.Helper()
	rec := e.do(t, "POST", "/api/recipes", map[string]any{
		"name":      name,
		"servings":  2,
		"category":  "Dinner",
		"nutrition": map[string]any{"calories": calories},
		"ingredients": []map[string]any{
			{"name": "salmon fillet", "amount": 2, "unit": "pieces"},
		},
	})
	expectStatus(t, rec, http.StatusCreated)
	return decodeBody[model.Recipe](t, rec)
}

func (e *testEnv) createCurrentPlan(t *testing.T) model.MealPlan {
	t.Helper()
	rec := e.do(t, "POST", "/api/meal-plans", map[string]any{
		"name":        "Week 1",
		"start_date":  "2024-01-01",
		"end_date":    "2024-01-07",
		"set_current": true,
	})
	expectStatus(t, rec, http.StatusCreated)
	return decodeBody[model.MealPlan](t, rec)
}

// interleavedBody runs dispatch on the first Read, so the dispatch lands
// after the handler's initial lookup and before it writes its change.
type interleavedBody struct {
	r        io.Reader
	once     sync.Once
	dispatch func()
}

func (b *interleavedBody) Read(p []byte) (int, error) {
	b.once.Do(b.dispatch)
	return b.r.Read(p)
}

func (e *testEnv) doInterleaved(t *testing.T, method, path string, body any, dispatch func()) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, &interleavedBody{r: bytes.NewReader(data), dispatch: dispatch})
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func encodeAction(t *testing.T, a planner.Action) []byte {
	t.Helper()
	data, err := planner.EncodeAction(a)
	if err != nil {
		t.Fatalf("encode %s: %v", a.Kind(), err)
	}
	return data
}
