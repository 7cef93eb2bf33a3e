package handler

import (
	"net/http"
	"testing"

	"github.com/dukerupert/mealplanner/internal/model"
	"github.com/dukerupert/mealplanner/internal/planner"
)

func TestMealPlanCRUD(t *testing.T) {
	env := setupTestEnv(t)

	plan := env.createCurrentPlan(t)
	snap := env.store.Snapshot()
	if len(snap.MealPlans) != 1 {
		t.Fatalf("meal plans = %d, want 1", len(snap.MealPlans))
	}
	if snap.CurrentMealPlan == nil || snap.CurrentMealPlan.ID != plan.ID {
		t.Fatalf("current plan = %+v, want %s", snap.CurrentMealPlan, plan.ID)
	}

	rec := env.do(t, "GET", "/api/meal-plans/"+plan.ID, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = env.do(t, "PUT", "/api/meal-plans/"+plan.ID, map[string]any{
		"name":       "Week 1 (revised)",
		"start_date": "2024-01-01",
		"end_date":   "2024-01-14",
	})
	expectStatus(t, rec, http.StatusOK)
	if got := env.store.Snapshot().CurrentMealPlan; got == nil || got.Name != "Week 1 (revised)" {
		t.Errorf("current plan not kept in sync: %+v", got)
	}

	rec = env.do(t, "DELETE", "/api/meal-plans/"+plan.ID, nil)
	expectStatus(t, rec, http.StatusNoContent)
	snap = env.store.Snapshot()
	if len(snap.MealPlans) != 0 || snap.CurrentMealPlan != nil {
		t.Errorf("after delete: plans=%d current=%v", len(snap.MealPlans), snap.CurrentMealPlan)
	}
}

func TestMealPlanValidation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-07"}},
		{"bad start", map[string]any{"name": "x", "start_date": "Jan 1", "end_date": "2024-01-07"}},
		{"missing end", map[string]any{"name": "x", "start_date": "2024-01-01"}},
		{"end before start", map[string]any{"name": "x", "start_date": "2024-01-07", "end_date": "2024-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, env.do(t, "POST", "/api/meal-plans", tt.body), http.StatusBadRequest)
		})
	}
	expectStatus(t, env.do(t, "PUT", "/api/meal-plans/missing", map[string]any{"name": "x"}), http.StatusNotFound)
	expectStatus(t, env.do(t, "DELETE", "/api/meal-plans/missing", nil), http.StatusNotFound)
}

func TestCurrentMealPlan(t *testing.T) {
	env := setupTestEnv(t)

	expectStatus(t, env.do(t, "GET", "/api/meal-plans/current", nil), http.StatusNotFound)

	rec := env.do(t, "POST", "/api/meal-plans", map[string]any{
		"name": "Later", "start_date": "2024-02-01", "end_date": "2024-02-07",
	})
	expectStatus(t, rec, http.StatusCreated)
	plan := decodeBody[model.MealPlan](t, rec)
	if env.store.Snapshot().CurrentMealPlan != nil {
		t.Fatal("plan should not be current without set_current")
	}

	expectStatus(t, env.do(t, "PUT", "/api/meal-plans/current", map[string]any{"id": "missing"}), http.StatusNotFound)

	rec = env.do(t, "PUT", "/api/meal-plans/current", map[string]any{"id": plan.ID})
	expectStatus(t, rec, http.StatusOK)

	rec = env.do(t, "GET", "/api/meal-plans/current", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[model.MealPlan](t, rec); got.ID != plan.ID {
		t.Errorf("current = %s, want %s", got.ID, plan.ID)
	}

	expectStatus(t, env.do(t, "DELETE", "/api/meal-plans/current", nil), http.StatusNoContent)
	if env.store.Snapshot().CurrentMealPlan != nil {
		t.Error("current plan should be cleared")
	}
	if len(env.store.Snapshot().MealPlans) != 1 {
		t.Error("clearing the current plan must not delete it")
	}
}

func TestPlannedMealsWithoutCurrentPlan(t *testing.T) {
	env := setupTestEnv(t)
	recipe := env.createRecipe(t, "Salmon", 280)

	body := map[string]any{"date": "2024-01-01", "meal_type": "Dinner", "recipe_id": recipe.ID}
	expectStatus(t, env.do(t, "POST", "/api/meal-plans/current/meals", body), http.StatusConflict)
	expectStatus(t, env.do(t, "PUT", "/api/meal-plans/current/meals/m1", body), http.StatusConflict)
	expectStatus(t, env.do(t, "DELETE", "/api/meal-plans/current/meals/m1", nil), http.StatusConflict)

	rec := env.do(t, "GET", "/api/meals?date=2024-01-01", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[[]model.PlannedMeal](t, rec); len(got) != 0 {
		t.Errorf("meals = %d, want 0", len(got))
	}
}

func TestPlannedMealLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	salmon := env.createRecipe(t, "Salmon", 700)
	oats := env.createRecipe(t, "Oats", 350)
	plan := env.createCurrentPlan(t)

	// Add
	rec := env.do(t, "POST", "/api/meal-plans/current/meals", map[string]any{
		"date": "2024-01-01", "meal_type": "Dinner", "recipe_id": salmon.ID, "servings": 2,
	})
	expectStatus(t, rec, http.StatusCreated)
	meal := decodeBody[model.PlannedMeal](t, rec)
	if meal.Recipe.ID != salmon.ID || meal.Servings != 2 {
		t.Errorf("meal = %+v", meal)
	}

	rec = env.do(t, "POST", "/api/meal-plans/current/meals", map[string]any{
		"date": "2024-01-02", "meal_type": "Breakfast", "recipe_id": oats.ID,
	})
	expectStatus(t, rec, http.StatusCreated)
	if got := decodeBody[model.PlannedMeal](t, rec); got.Servings != 1 {
		t.Errorf("servings = %v, want default 1", got.Servings)
	}

	snap := env.store.Snapshot()
	stored, _ := snap.MealPlan(plan.ID)
	if len(stored.Meals) != 2 || len(snap.CurrentMealPlan.Meals) != 2 {
		t.Fatalf("meals: collection=%d current=%d, want 2", len(stored.Meals), len(snap.CurrentMealPlan.Meals))
	}

	// Editing the catalog recipe leaves the planned copy alone
	rec = env.do(t, "PUT", "/api/recipes/"+salmon.ID, map[string]any{"name": "Salmon v2"})
	expectStatus(t, rec, http.StatusOK)
	if got, _ := env.store.Snapshot().PlannedMeal(meal.ID); got.Recipe.Name != "Salmon" {
		t.Errorf("planned recipe name = %q, want snapshot %q", got.Recipe.Name, "Salmon")
	}

	// Update keeps fields that are not sent
	rec = env.do(t, "PUT", "/api/meal-plans/current/meals/"+meal.ID, map[string]any{"notes": "double batch"})
	expectStatus(t, rec, http.StatusOK)
	updated := decodeBody[model.PlannedMeal](t, rec)
	if updated.Notes != "double batch" || updated.MealType != model.MealDinner || updated.Servings != 2 {
		t.Errorf("updated = %+v", updated)
	}

	// Query by day and slot
	rec = env.do(t, "GET", "/api/meals?date=2024-01-01", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[[]model.PlannedMeal](t, rec); len(got) != 1 || got[0].ID != meal.ID {
		t.Errorf("meals on 2024-01-01 = %+v", got)
	}
	rec = env.do(t, "GET", "/api/meals?date=2024-01-02&meal_type=Dinner", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[[]model.PlannedMeal](t, rec); len(got) != 0 {
		t.Errorf("dinners on 2024-01-02 = %d, want 0", len(got))
	}
	expectStatus(t, env.do(t, "GET", "/api/meals?meal_type=Brunch", nil), http.StatusBadRequest)

	// Week view
	rec = env.do(t, "GET", "/api/meals/week?start=2024-01-03", nil)
	expectStatus(t, rec, http.StatusOK)
	week := decodeBody[planner.WeekSummary](t, rec)
	if len(week.Meals) != 2 || week.TotalCalories != 1750 || week.UniqueRecipes != 2 {
		t.Errorf("week = %d meals, %d cal, %d recipes", len(week.Meals), week.TotalCalories, week.UniqueRecipes)
	}

	// Delete
	expectStatus(t, env.do(t, "DELETE", "/api/meal-plans/current/meals/"+meal.ID, nil), http.StatusNoContent)
	expectStatus(t, env.do(t, "DELETE", "/api/meal-plans/current/meals/"+meal.ID, nil), http.StatusNotFound)
	stored, _ = env.store.Snapshot().MealPlan(plan.ID)
	if len(stored.Meals) != 1 {
		t.Errorf("meals = %d, want 1", len(stored.Meals))
	}
}

func TestPlannedMealValidation(t *testing.T) {
	env := setupTestEnv(t)
	recipe := env.createRecipe(t, "Salmon", 280)
	env.createCurrentPlan(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad date", map[string]any{"date": "soon", "meal_type": "Dinner", "recipe_id": recipe.ID}},
		{"bad meal type", map[string]any{"date": "2024-01-01", "meal_type": "Brunch", "recipe_id": recipe.ID}},
		{"unknown recipe", map[string]any{"date": "2024-01-01", "meal_type": "Dinner", "recipe_id": "missing"}},
		{"negative servings", map[string]any{"date": "2024-01-01", "meal_type": "Dinner", "recipe_id": recipe.ID, "servings": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, env.do(t, "POST", "/api/meal-plans/current/meals", tt.body), http.StatusBadRequest)
		})
	}
	expectStatus(t, env.do(t, "PUT", "/api/meal-plans/current/meals/missing", map[string]any{}), http.StatusNotFound)
}

func TestUpdateMealPlanKeepsConcurrentMeal(t *testing.T) {
	env := setupTestEnv(t)
	recipe := env.createRecipe(t, "Salmon", 280)
	plan := env.createCurrentPlan(t)

	rec := env.doInterleaved(t, "PUT", "/api/meal-plans/"+plan.ID, map[string]any{
		"name": "Renamed", "start_date": "2024-01-01", "end_date": "2024-01-07",
	}, func() {
		env.store.Dispatch(planner.AddPlannedMeal{Meal: model.PlannedMeal{
			ID: "m1", Date: testNow, MealType: model.MealDinner, Recipe: recipe, Servings: 1,
		}})
	})
	expectStatus(t, rec, http.StatusOK)

	if got := decodeBody[model.MealPlan](t, rec); len(got.Meals) != 1 {
		t.Errorf("response meals = %d, want 1", len(got.Meals))
	}
	stored, _ := env.store.Snapshot().MealPlan(plan.ID)
	if stored.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", stored.Name)
	}
	if len(stored.Meals) != 1 || stored.Meals[0].ID != "m1" {
		t.Errorf("meals = %+v, want the meal added during the update", stored.Meals)
	}
	if cur := env.store.Snapshot().CurrentMealPlan; cur == nil || len(cur.Meals) != 1 {
		t.Errorf("current plan = %+v, want 1 meal", cur)
	}
}

func TestUpdatePlannedMealKeepsConcurrentEdit(t *testing.T) {
	env := setupTestEnv(t)
	recipe := env.createRecipe(t, "Salmon", 280)
	env.createCurrentPlan(t)

	rec := env.do(t, "POST", "/api/meal-plans/current/meals", map[string]any{
		"date": "2024-01-01", "meal_type": "Dinner", "recipe_id": recipe.ID,
	})
	expectStatus(t, rec, http.StatusCreated)
	meal := decodeBody[model.PlannedMeal](t, rec)

	rec = env.doInterleaved(t, "PUT", "/api/meal-plans/current/meals/"+meal.ID, map[string]any{"servings": 3}, func() {
		edited := meal
		edited.Notes = "no dill"
		env.store.Dispatch(planner.UpdatePlannedMeal{Meal: edited})
	})
	expectStatus(t, rec, http.StatusOK)

	got, _ := env.store.Snapshot().PlannedMeal(meal.ID)
	if got.Servings != 3 || got.Notes != "no dill" {
		t.Errorf("meal = servings %v notes %q, want 3 and %q", got.Servings, got.Notes, "no dill")
	}
}

func TestUpdateMealPlanDeletedDuringRequest(t *testing.T) {
	env := setupTestEnv(t)
	plan := env.createCurrentPlan(t)

	rec := env.doInterleaved(t, "PUT", "/api/meal-plans/"+plan.ID, map[string]any{
		"name": "Renamed", "start_date": "2024-01-01", "end_date": "2024-01-07",
	}, func() {
		env.store.Dispatch(planner.DeleteMealPlan{ID: plan.ID})
	})
	expectStatus(t, rec, http.StatusNotFound)
	if n := len(env.store.Snapshot().MealPlans); n != 0 {
		t.Errorf("meal plans = %d, want 0", n)
	}
}
