package planner

import (
	"encoding/json"
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
)

// Kind names an action on the wire and in change notifications.
type Kind string

const (
	KindAddRecipe           Kind = "add_recipe"
	KindUpdateRecipe        Kind = "update_recipe"
	KindDeleteRecipe        Kind = "delete_recipe"
	KindAddMealPlan         Kind = "add_meal_plan"
	KindUpdateMealPlan      Kind = "update_meal_plan"
	KindDeleteMealPlan      Kind = "delete_meal_plan"
	KindSetCurrentMealPlan  Kind = "set_current_meal_plan"
	KindAddPlannedMeal      Kind = "add_planned_meal"
	KindUpdatePlannedMeal   Kind = "update_planned_meal"
	KindDeletePlannedMeal   Kind = "delete_planned_meal"
	KindAddShoppingList     Kind = "add_shopping_list"
	KindUpdateShoppingList  Kind = "update_shopping_list"
	KindDeleteShoppingList  Kind = "delete_shopping_list"
	KindToggleItemPurchased Kind = "toggle_item_purchased"
	KindSetSelectedDate     Kind = "set_selected_date"
	KindLoadData            Kind = "load_data"
)

// Action is one state transition request. The set of implementations is
// closed; Reduce handles each of them.
type Action interface {
	Kind() Kind
	action()
}

type AddRecipe struct {
	Recipe model.Recipe `json:"recipe"`
}

type UpdateRecipe struct {
	Recipe model.Recipe `json:"recipe"`
}

type DeleteRecipe struct {
	ID string `json:"id"`
}

type AddMealPlan struct {
	Plan model.MealPlan `json:"plan"`
}

type UpdateMealPlan struct {
	Plan model.MealPlan `json:"plan"`
}

type DeleteMealPlan struct {
	ID string `json:"id"`
}

// SetCurrentMealPlan replaces the current plan. A nil Plan clears it. The
// plan is not checked against the collection.
type SetCurrentMealPlan struct {
	Plan *model.MealPlan `json:"plan"`
}

type AddPlannedMeal struct {
	Meal model.PlannedMeal `json:"meal"`
}

type UpdatePlannedMeal struct {
	Meal model.PlannedMeal `json:"meal"`
}

type DeletePlannedMeal struct {
	ID string `json:"id"`
}

type AddShoppingList struct {
	List model.ShoppingList `json:"list"`
}

type UpdateShoppingList struct {
	List model.ShoppingList `json:"list"`
}

type DeleteShoppingList struct {
	ID string `json:"id"`
}

// ToggleItemPurchased flips the purchased flag of one shopping list item.
type ToggleItemPurchased struct {
	ListID string `json:"list_id"`
	ItemID string `json:"item_id"`
}

type SetSelectedDate struct {
	Date time.Time `json:"date"`
}

// LoadData overwrites every field that is Set and leaves the rest alone.
type LoadData struct {
	Recipes         Opt[[]model.Recipe]       `json:"recipes,omitzero"`
	MealPlans       Opt[[]model.MealPlan]     `json:"meal_plans,omitzero"`
	ShoppingLists   Opt[[]model.ShoppingList] `json:"shopping_lists,omitzero"`
	CurrentMealPlan Opt[*model.MealPlan]      `json:"current_meal_plan,omitzero"`
	SelectedDate    Opt[time.Time]            `json:"selected_date,omitzero"`
}

func (AddRecipe) Kind() Kind           { return KindAddRecipe }
func (UpdateRecipe) Kind() Kind        { return KindUpdateRecipe }
func (DeleteRecipe) Kind() Kind        { return KindDeleteRecipe }
func (AddMealPlan) Kind() Kind         { return KindAddMealPlan }
func (UpdateMealPlan) Kind() Kind      { return KindUpdateMealPlan }
func (DeleteMealPlan) Kind() Kind      { return KindDeleteMealPlan }
func (SetCurrentMealPlan) Kind() Kind  { return KindSetCurrentMealPlan }
func (AddPlannedMeal) Kind() Kind      { return KindAddPlannedMeal }
func (UpdatePlannedMeal) Kind() Kind   { return KindUpdatePlannedMeal }
func (DeletePlannedMeal) Kind() Kind   { return KindDeletePlannedMeal }
func (AddShoppingList) Kind() Kind     { return KindAddShoppingList }
func (UpdateShoppingList) Kind() Kind  { return KindUpdateShoppingList }
func (DeleteShoppingList) Kind() Kind  { return KindDeleteShoppingList }
func (ToggleItemPurchased) Kind() Kind { return KindToggleItemPurchased }
func (SetSelectedDate) Kind() Kind     { return KindSetSelectedDate }
func (LoadData) Kind() Kind            { return KindLoadData }

func (AddRecipe) action()           {}
func (UpdateRecipe) action()        {}
func (DeleteRecipe) action()        {}
func (AddMealPlan) action()         {}
func (UpdateMealPlan) action()      {}
func (DeleteMealPlan) action()      {}
func (SetCurrentMealPlan) action()  {}
func (AddPlannedMeal) action()      {}
func (UpdatePlannedMeal) action()   {}
func (DeletePlannedMeal) action()   {}
func (AddShoppingList) action()     {}
func (UpdateShoppingList) action()  {}
func (DeleteShoppingList) action()  {}
func (ToggleItemPurchased) action() {}
func (SetSelectedDate) action()     {}
func (LoadData) action()            {}

// Opt is a value that may be absent. In JSON a present key sets it, even
// when the value is null.
type Opt[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Set: true, Value: v}
}

// IsZero reports whether o is absent, so omitzero drops unset fields.
func (o Opt[T]) IsZero() bool {
	return !o.Set
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set = true
	o.Value = v
	return nil
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
