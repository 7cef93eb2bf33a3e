package planner

import (
	"math"
	"strings"
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
)

// SameDay reports whether a and b fall on the same calendar day in b's
// location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MealsOn returns the meals planned for the calendar day of date.
func MealsOn(meals []model.PlannedMeal, date time.Time) []model.PlannedMeal {
	var out []model.PlannedMeal
	for _, m := range meals {
		if SameDay(m.Date, date) {
			out = append(out, m)
		}
	}
	return out
}

// MealsForSlot returns the meals planned for one day and meal type.
func MealsForSlot(meals []model.PlannedMeal, date time.Time, mealType model.MealType) []model.PlannedMeal {
	var out []model.PlannedMeal
	for _, m := range meals {
		if m.MealType == mealType && SameDay(m.Date, date) {
			out = append(out, m)
		}
	}
	return out
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// MealsInWeek returns meals dated in [weekStart, weekStart+7 days).
func MealsInWeek(meals []model.PlannedMeal, weekStart time.Time) []model.PlannedMeal {
	end := weekStart.AddDate(0, 0, 7)
	var out []model.PlannedMeal
	for _, m := range meals {
		if !m.Date.Before(weekStart) && m.Date.Before(end) {
			out = append(out, m)
		}
	}
	return out
}

// TotalNutrition sums each meal's recipe nutrition scaled by its servings.
func TotalNutrition(meals []model.PlannedMeal) model.NutritionInfo {
	var total model.NutritionInfo
	for _, m := range meals {
		total = total.Add(m.Recipe.Nutrition.Scale(m.Servings))
	}
	return total
}

// UniqueRecipeCount counts distinct recipe ids across meals.
func UniqueRecipeCount(meals []model.PlannedMeal) int {
	seen := make(map[string]struct{}, len(meals))
	for _, m := range meals {
		seen[m.Recipe.ID] = struct{}{}
	}
	return len(seen)
}

type CategoryGroup struct {
	Category model.IngredientCategory `json:"category"`
	Items    []model.ShoppingListItem `json:"items"`
}

// GroupByCategory groups items by ingredient category. Groups appear in the
// order their first item appears.
func GroupByCategory(items []model.ShoppingListItem) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[model.IngredientCategory]int)
	for _, item := range items {
		cat := item.Ingredient.Category
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, CategoryGroup{Category: cat})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// CompletionPercentage is the share of purchased items rounded to a whole
// percent. An empty list is 0.
func CompletionPercentage(list model.ShoppingList) int {
	total := len(list.Items)
	if total == 0 {
		return 0
	}
	purchased := 0
	for _, item := range list.Items {
		if item.Purchased {
			purchased++
		}
	}
	return int(math.Round(float64(purchased) / float64(total) * 100))
}

// FilterRecipes matches query case-insensitively against the name and tags.
// An empty category or "All" matches every category.
func FilterRecipes(recipes []model.Recipe, query string, category string) []model.Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []model.Recipe{}
	for _, r := range recipes {
		if category != "" && category != "All" && string(r.Category) != category {
			continue
		}
		if q != "" && !recipeMatches(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func recipeMatches(r model.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

type DashboardStats struct {
	TotalRecipes   int                 `json:"total_recipes"`
	PlannedMeals   int                 `json:"planned_meals"`
	ShoppingLists  int                 `json:"shopping_lists"`
	TodayCalories  int                 `json:"today_calories"`
	TodayMeals     []model.PlannedMeal `json:"today_meals"`
	TodayNutrition model.NutritionInfo `json:"today_nutrition"`
}

// Dashboard summarizes s around its selected date.
func Dashboard(s State) DashboardStats {
	stats := DashboardStats{
		TotalRecipes:  len(s.Recipes),
		ShoppingLists: len(s.ShoppingLists),
		TodayMeals:    []model.PlannedMeal{},
	}
	if s.CurrentMealPlan == nil {
		return stats
	}
	stats.PlannedMeals = len(s.CurrentMealPlan.Meals)
	if today := MealsOn(s.CurrentMealPlan.Meals, s.SelectedDate); today != nil {
		stats.TodayMeals = today
	}
	stats.TodayNutrition = TotalNutrition(stats.TodayMeals)
	stats.TodayCalories = int(math.Round(stats.TodayNutrition.Calories))
	return stats
}

type WeekSummary struct {
	Start         time.Time           `json:"start"`
	Meals         []model.PlannedMeal `json:"meals"`
	TotalCalories int                 `json:"total_calories"`
	UniqueRecipes int                 `json:"unique_recipes"`
}

// Week summarizes the meals of plan in the week containing day.
func Week(plan *model.MealPlan, day time.Time) WeekSummary {
	start := StartOfWeek(day)
	summary := WeekSummary{Start: start, Meals: []model.PlannedMeal{}}
	if plan == nil {
		return summary
	}
	if meals := MealsInWeek(plan.Meals, start); meals != nil {
		summary.Meals = meals
	}
	summary.TotalCalories = int(math.Round(TotalNutrition(summary.Meals).Calories))
	summary.UniqueRecipes = UniqueRecipeCount(summary.Meals)
	return summary
}
