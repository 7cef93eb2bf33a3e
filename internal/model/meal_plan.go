package model

import "time"

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// MealTypes lists the calendar slots of a day in order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func (m MealType) Valid() bool {
	for _, v := range MealTypes {
		if m == v {
			return true
		}
	}
	return false
}

// PlannedMeal owns a copy of the recipe taken when the meal was planned.
// Later edits to the catalog recipe do not reach it.
type PlannedMeal struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	MealType MealType  `json:"meal_type"`
	Recipe   Recipe    `json:"recipe"`
	Servings float64   `json:"servings"`
	Notes    string    `json:"notes,omitempty"`
}

type MealPlan struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Meals     []PlannedMeal `json:"meals"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
