package planner

// Change describes a dispatched action for change notifications.
type Change struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

// Describe maps an action to the entity it touched.
func Describe(a Action) Change {
	switch a := a.(type) {
	case AddRecipe:
		return Change{"recipe", "created", a.Recipe.ID}
	case UpdateRecipe:
		return Change{"recipe", "updated", a.Recipe.ID}
	case DeleteRecipe:
		return Change{"recipe", "deleted", a.ID}
	case AddMealPlan:
		return Change{"meal_plan", "created", a.Plan.ID}
	case UpdateMealPlan:
		return Change{"meal_plan", "updated", a.Plan.ID}
	case DeleteMealPlan:
		return Change{"meal_plan", "deleted", a.ID}
	case SetCurrentMealPlan:
		if a.Plan == nil {
			return Change{"current_meal_plan", "cleared", ""}
		}
		return Change{"current_meal_plan", "selected", a.Plan.ID}
	case AddPlannedMeal:
		return Change{"planned_meal", "created", a.Meal.ID}
	case UpdatePlannedMeal:
		return Change{"planned_meal", "updated", a.Meal.ID}
	case DeletePlannedMeal:
		return Change{"planned_meal", "deleted", a.ID}
	case AddShoppingList:
		return Change{"shopping_list", "created", a.List.ID}
	case UpdateShoppingList:
		return Change{"shopping_list", "updated", a.List.ID}
	case DeleteShoppingList:
		return Change{"shopping_list", "deleted", a.ID}
	case ToggleItemPurchased:
		return Change{"shopping_list_item", "toggled", a.ItemID}
	case SetSelectedDate:
		return Change{"selected_date", "updated", ""}
	case LoadData:
		return Change{"state", "loaded", ""}
	}
	return Change{"state", string(a.Kind()), ""}
}
