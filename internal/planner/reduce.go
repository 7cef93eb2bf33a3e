package planner

import (
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
)

// Reduce applies a to s and returns the next state. It never fails. A meal
// action while no plan is current returns s unchanged; otherwise it stamps
// the current plan's updated_at with now even if the meal id is unknown.
// Recipe, plan and list actions naming an unknown id change nothing, and
// toggling an unknown item leaves its list unstamped.
func Reduce(s State, a Action, now time.Time) State {
	switch a := a.(type) {
	case AddRecipe:
		s.Recipes = appendCopy(s.Recipes, a.Recipe)
	case UpdateRecipe:
		s.Recipes = replaceByID(s.Recipes, a.Recipe, recipeKey)
	case DeleteRecipe:
		s.Recipes = removeByID(s.Recipes, a.ID, recipeKey)

	case AddMealPlan:
		s.MealPlans = appendCopy(s.MealPlans, a.Plan)
	case UpdateMealPlan:
		s.MealPlans = replaceByID(s.MealPlans, a.Plan, planKey)
		if s.CurrentMealPlan != nil && s.CurrentMealPlan.ID == a.Plan.ID {
			s.CurrentMealPlan = planRef(a.Plan)
		}
	case DeleteMealPlan:
		s.MealPlans = removeByID(s.MealPlans, a.ID, planKey)
		if s.CurrentMealPlan != nil && s.CurrentMealPlan.ID == a.ID {
			s.CurrentMealPlan = nil
		}
	case SetCurrentMealPlan:
		if a.Plan == nil {
			s.CurrentMealPlan = nil
		} else {
			s.CurrentMealPlan = planRef(*a.Plan)
		}

	case AddPlannedMeal:
		return editCurrentPlan(s, now, func(meals []model.PlannedMeal) []model.PlannedMeal {
			return appendCopy(meals, a.Meal)
		})
	case UpdatePlannedMeal:
		return editCurrentPlan(s, now, func(meals []model.PlannedMeal) []model.PlannedMeal {
			return replaceByID(meals, a.Meal, mealKey)
		})
	case DeletePlannedMeal:
		return editCurrentPlan(s, now, func(meals []model.PlannedMeal) []model.PlannedMeal {
			return removeByID(meals, a.ID, mealKey)
		})

	case AddShoppingList:
		s.ShoppingLists = appendCopy(s.ShoppingLists, a.List)
	case UpdateShoppingList:
		s.ShoppingLists = replaceByID(s.ShoppingLists, a.List, listKey)
	case DeleteShoppingList:
		s.ShoppingLists = removeByID(s.ShoppingLists, a.ID, listKey)
	case ToggleItemPurchased:
		s.ShoppingLists = toggleItem(s.ShoppingLists, a.ListID, a.ItemID, now)

	case SetSelectedDate:
		s.SelectedDate = a.Date

	case LoadData:
		if a.Recipes.Set {
			s.Recipes = a.Recipes.Value
		}
		if a.MealPlans.Set {
			s.MealPlans = a.MealPlans.Value
		}
		if a.ShoppingLists.Set {
			s.ShoppingLists = a.ShoppingLists.Value
		}
		if a.CurrentMealPlan.Set {
			if a.CurrentMealPlan.Value == nil {
				s.CurrentMealPlan = nil
			} else {
				s.CurrentMealPlan = planRef(*a.CurrentMealPlan.Value)
			}
		}
		if a.SelectedDate.Set {
			s.SelectedDate = a.SelectedDate.Value
		}
	}
	return s
}

// editCurrentPlan rewrites the current plan's meals, stamps it, and writes
// the result back into the plan collection in the same step.
func editCurrentPlan(s State, now time.Time, edit func([]model.PlannedMeal) []model.PlannedMeal) State {
	if s.CurrentMealPlan == nil {
		return s
	}
	plan := *s.CurrentMealPlan
	plan.Meals = edit(plan.Meals)
	plan.UpdatedAt = now

	s.CurrentMealPlan = &plan
	s.MealPlans = replaceByID(s.MealPlans, plan, planKey)
	return s
}

func toggleItem(lists []model.ShoppingList, listID, itemID string, now time.Time) []model.ShoppingList {
	list, ok := findByID(lists, listID, listKey)
	if !ok {
		return lists
	}
	idx := -1
	for i, item := range list.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return lists
	}
	items := make([]model.ShoppingListItem, len(list.Items))
	copy(items, list.Items)
	items[idx].Purchased = !items[idx].Purchased
	list.Items = items
	list.UpdatedAt = now
	return replaceByID(lists, list, listKey)
}

func planRef(p model.MealPlan) *model.MealPlan {
	return &p
}

func recipeKey(r model.Recipe) string    { return r.ID }
func planKey(p model.MealPlan) string     { return p.ID }
func mealKey(m model.PlannedMeal) string  { return m.ID }
func listKey(l model.ShoppingList) string { return l.ID }

// appendCopy appends v to a fresh slice so the caller's backing array is
// never written.
func appendCopy[T any](xs []T, v T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, v)
}

// replaceByID returns a copy of xs with every element whose id matches v's
// replaced by v. Without a match xs itself is returned.
func replaceByID[T any](xs []T, v T, id func(T) string) []T {
	want := id(v)
	var out []T
	for i, x := range xs {
		if id(x) != want {
			continue
		}
		if out == nil {
			out = make([]T, len(xs))
			copy(out, xs)
		}
		out[i] = v
	}
	if out == nil {
		return xs
	}
	return out
}

// removeByID returns xs without the elements whose id matches. Without a
// match xs itself is returned.
func removeByID[T any](xs []T, want string, id func(T) string) []T {
	n := 0
	for _, x := range xs {
		if id(x) == want {
			n++
		}
	}
	if n == 0 {
		return xs
	}
	out := make([]T, 0, len(xs)-n)
	for _, x := range xs {
		if id(x) != want {
			out = append(out, x)
		}
	}
	return out
}

func findByID[T any](xs []T, want string, id func(T) string) (T, bool) {
	for _, x := range xs {
		if id(x) == want {
			return x, true
		}
	}
	var zero T
	return zero, false
}
