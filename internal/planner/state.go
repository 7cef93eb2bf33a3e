// Package planner holds the meal planner state and the transition function
// that applies actions to it.
package planner

import (
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
)

// State is an immutable snapshot. Transitions build new slices instead of
// writing into the ones a previous State refers to, so a State obtained from
// Store.Snapshot stays valid after later dispatches. Callers must treat it as
// read-only.
type State struct {
	Recipes         []model.Recipe       `json:"recipes"`
	MealPlans       []model.MealPlan     `json:"meal_plans"`
	ShoppingLists   []model.ShoppingList `json:"shopping_lists"`
	CurrentMealPlan *model.MealPlan      `json:"current_meal_plan"`
	SelectedDate    time.Time            `json:"selected_date"`
}

// NewState returns an empty state with the selected date set to now.
func NewState(now time.Time) State {
	return State{
		Recipes:       []model.Recipe{},
		MealPlans:     []model.MealPlan{},
		ShoppingLists: []model.ShoppingList{},
		SelectedDate:  now,
	}
}

func (s State) Recipe(id string) (model.Recipe, bool) {
	for _, r := range s.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Recipe{}, false
}

func (s State) MealPlan(id string) (model.MealPlan, bool) {
	for _, p := range s.MealPlans {
		if p.ID == id {
			return p, true
		}
	}
	return model.MealPlan{}, false
}

func (s State) ShoppingList(id string) (model.ShoppingList, bool) {
	for _, l := range s.ShoppingLists {
		if l.ID == id {
			return l, true
		}
	}
	return model.ShoppingList{}, false
}

// PlannedMeal looks up a meal in the current plan.
func (s State) PlannedMeal(id string) (model.PlannedMeal, bool) {
	if s.CurrentMealPlan == nil {
		return model.PlannedMeal{}, false
	}
	for _, m := range s.CurrentMealPlan.Meals {
		if m.ID == id {
			return m, true
		}
	}
	return model.PlannedMeal{}, false
}
