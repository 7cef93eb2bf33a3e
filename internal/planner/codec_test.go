package planner

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Action
	}{
		{"delete recipe", `{"type":"delete_recipe","payload":{"id":"r1"}}`, DeleteRecipe{ID: "r1"}},
		{"delete meal plan", `{"type":"delete_meal_plan","payload":{"id":"p1"}}`, DeleteMealPlan{ID: "p1"}},
		{"clear current plan", `{"type":"set_current_meal_plan","payload":{"plan":null}}`, SetCurrentMealPlan{}},
		{"toggle item", `{"type":"toggle_item_purchased","payload":{"list_id":"l1","item_id":"i1"}}`, ToggleItemPurchased{ListID: "l1", ItemID: "i1"}},
		{"selected date", `{"type":"set_selected_date","payload":{"date":"2024-01-01T00:00:00Z"}}`, SetSelectedDate{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}
	for _, tt := range tests {
		got, err := DecodeAction([]byte(tt.input))
		if err != nil {
			t.Fatalf("%s: decode: %v", tt.name, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %#v, want %#v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeAddPlannedMeal(t *testing.T) {
	input := `{"type":"add_planned_meal","payload":{"meal":{
		"id":"m1","date":"2024-01-01T00:00:00Z","meal_type":"Dinner","servings":2,
		"recipe":{"id":"r1","name":"Salmon","servings":4,"nutrition":{"calories":280}}}}}`

	a, err := DecodeAction([]byte(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	add, ok := a.(AddPlannedMeal)
	if !ok {
		t.Fatalf("got %T, want AddPlannedMeal", a)
	}
	if add.Meal.MealType != model.MealDinner || add.Meal.Servings != 2 {
		t.Errorf("meal = %+v", add.Meal)
	}
	if add.Meal.Recipe.Nutrition.Calories != 280 {
		t.Errorf("calories = %v, want 280", add.Meal.Recipe.Nutrition.Calories)
	}
}

func TestDecodeLoadDataPresence(t *testing.T) {
	a, err := DecodeAction([]byte(`{"type":"load_data","payload":{"recipes":[],"current_meal_plan":null}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	load := a.(LoadData)
	if !load.Recipes.Set {
		t.Error("recipes should be set")
	}
	if !load.CurrentMealPlan.Set || load.CurrentMealPlan.Value != nil {
		t.Errorf("current_meal_plan = %+v, want set to nil", load.CurrentMealPlan)
	}
	if load.MealPlans.Set || load.ShoppingLists.Set || load.SelectedDate.Set {
		t.Error("absent fields should not be set")
	}
}

func TestDecodeActionErrors(t *testing.T) {
	if _, err := DecodeAction([]byte(`{"type":"launch_rocket","payload":{}}`)); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown kind: err = %v, want ErrUnknownAction", err)
	}
	if _, err := DecodeAction([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed envelope")
	}
	if _, err := DecodeAction([]byte(`{"type":"add_recipe"}`)); err == nil {
		t.Error("expected error for missing payload")
	}
	if _, err := DecodeAction([]byte(`{"type":"add_recipe","payload":{"recipe":{"servings":"two"}}}`)); err == nil {
		t.Error("expected error for mistyped payload")
	}
}

func TestEncodeDecodeAction(t *testing.T) {
	plan := testPlan("p1")
	actions := []Action{
		AddRecipe{Recipe: testRecipe("r1", "Oats")},
		UpdateMealPlan{Plan: plan},
		SetCurrentMealPlan{Plan: &plan},
		LoadData{ShoppingLists: Some([]model.ShoppingList{{ID: "l1", Name: "Weekly"}})},
	}
	for _, a := range actions {
		data, err := EncodeAction(a)
		if err != nil {
			t.Fatalf("encode %s: %v", a.Kind(), err)
		}
		got, err := DecodeAction(data)
		if err != nil {
			t.Fatalf("decode %s: %v", a.Kind(), err)
		}
		if got.Kind() != a.Kind() {
			t.Errorf("kind = %s, want %s", got.Kind(), a.Kind())
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		action Action
		want   Change
	}{
		{AddRecipe{Recipe: model.Recipe{ID: "r1"}}, Change{"recipe", "created", "r1"}},
		{DeletePlannedMeal{ID: "m1"}, Change{"planned_meal", "deleted", "m1"}},
		{SetCurrentMealPlan{}, Change{"current_meal_plan", "cleared", ""}},
		{ToggleItemPurchased{ListID: "l1", ItemID: "i1"}, Change{"shopping_list_item", "toggled", "i1"}},
		{LoadData{}, Change{"state", "loaded", ""}},
	}
	for _, tt := range tests {
		if got := Describe(tt.action); got != tt.want {
			t.Errorf("Describe(%s) = %+v, want %+v", tt.action.Kind(), got, tt.want)
		}
	}
}
