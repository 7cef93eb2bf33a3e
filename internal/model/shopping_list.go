package model

import "time"

type ShoppingListItem struct {
	ID         string     `json:"id"`
	Ingredient Ingredient `json:"ingredient"`
	Quantity   float64    `json:"quantity"`
	Purchased  bool       `json:"purchased"`
	Notes      string     `json:"notes,omitempty"`
}

type ShoppingList struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Items      []ShoppingListItem `json:"items"`
	MealPlanID string             `json:"meal_plan_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Completed  bool               `json:"completed"`
}
