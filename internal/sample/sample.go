// Package sample provides the starter recipes, meal plan and shopping list
// loaded into an empty planner.
package sample

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/mealplanner/internal/model"
	"github.com/dukerupert/mealplanner/internal/planner"
)

type ingredientSpec struct {
	name     string
	amount   float64
	unit     string
	category model.IngredientCategory
}

func ingredients(specs ...ingredientSpec) []model.Ingredient {
	out := make([]model.Ingredient, len(specs))
	for i, s := range specs {
		out[i] = model.Ingredient{
			ID:       uuid.NewString(),
			Name:     s.name,
			Amount:   s.amount,
			Unit:     s.unit,
			Category: s.category,
		}
	}
	return out
}

// Recipes returns fresh copies of the starter recipes with new ids.
func Recipes(now time.Time) []model.Recipe {
	return []model.Recipe{
		{
			ID:          uuid.NewString(),
			Name:        "Mediterranean Quinoa Bowl",
			Description: "A healthy and colorful bowl packed with Mediterranean flavors",
			Ingredients: ingredients(
				ingredientSpec{"Quinoa", 1, "cup", model.CategoryPantry},
				ingredientSpec{"Cherry tomatoes", 1, "cup", model.CategoryProduce},
				ingredientSpec{"Cucumber", 1, "medium", model.CategoryProduce},
				ingredientSpec{"Red onion", 0.25, "cup", model.CategoryProduce},
				ingredientSpec{"Feta cheese", 0.5, "cup", model.CategoryDairy},
				ingredientSpec{"Olive oil", 2, "tbsp", model.CategoryPantry},
				ingredientSpec{"Lemon juice", 2, "tbsp", model.CategoryProduce},
				ingredientSpec{"Fresh herbs", 0.25, "cup", model.CategoryProduce},
			),
			Instructions: []string{
				"Cook quinoa according to package instructions and let cool",
				"Dice cucumber and red onion",
				"Halve cherry tomatoes",
				"Whisk together olive oil and lemon juice",
				"Combine quinoa, vegetables, and feta in a bowl",
				"Drizzle with dressing and top with fresh herbs",
				"Season with salt and pepper to taste",
			},
			PrepTime:   15,
			CookTime:   15,
			Servings:   4,
			Difficulty: model.DifficultyEasy,
			Category:   model.RecipeLunch,
			Tags:       []string{"Mediterranean", "Healthy", "Vegetarian", "Gluten-free"},
			Nutrition: model.NutritionInfo{
				Calories: 320, Protein: 12, Carbs: 45, Fat: 12, Fiber: 5, Sugar: 8, Sodium: 380,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Overnight Oats with Berries",
			Description: "Creamy overnight oats topped with fresh berries and nuts",
			Ingredients: ingredients(
				ingredientSpec{"Rolled oats", 0.5, "cup", model.CategoryPantry},
				ingredientSpec{"Greek yogurt", 0.5, "cup", model.CategoryDairy},
				ingredientSpec{"Milk", 0.5, "cup", model.CategoryDairy},
				ingredientSpec{"Honey", 1, "tbsp", model.CategoryPantry},
				ingredientSpec{"Mixed berries", 0.5, "cup", model.CategoryProduce},
				ingredientSpec{"Almonds", 2, "tbsp", model.CategoryPantry},
				ingredientSpec{"Chia seeds", 1, "tsp", model.CategoryPantry},
			),
			Instructions: []string{
				"Mix oats, yogurt, milk, honey, and chia seeds in a jar",
				"Stir well to combine",
				"Refrigerate overnight or at least 4 hours",
				"Top with berries and almonds before serving",
				"Add extra milk if desired consistency is thinner",
			},
			PrepTime:   5,
			CookTime:   0,
			Servings:   1,
			Difficulty: model.DifficultyEasy,
			Category:   model.RecipeBreakfast,
			Tags:       []string{"Healthy", "Make-ahead", "Vegetarian", "High-protein"},
			Nutrition: model.NutritionInfo{
				Calories: 380, Protein: 20, Carbs: 52, Fat: 12, Fiber: 10, Sugar: 28, Sodium: 120,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Grilled Salmon with Asparagus",
			Description: "Perfectly grilled salmon with roasted asparagus and lemon",
			Ingredients: ingredients(
				ingredientSpec{"Salmon fillets", 4, "pieces", model.CategoryMeat},
				ingredientSpec{"Asparagus", 1, "lb", model.CategoryProduce},
				ingredientSpec{"Olive oil", 3, "tbsp", model.CategoryPantry},
				ingredientSpec{"Lemon", 1, "whole", model.CategoryProduce},
				ingredientSpec{"Garlic", 3, "cloves", model.CategoryProduce},
				ingredientSpec{"Fresh dill", 2, "tbsp", model.CategoryProduce},
			),
			Instructions: []string{
				"Preheat grill to medium-high heat",
				"Trim asparagus ends and toss with olive oil, salt, and pepper",
				"Season salmon with salt, pepper, and minced garlic",
				"Grill salmon 4-5 minutes per side",
				"Grill asparagus 8-10 minutes, turning occasionally",
				"Serve with lemon wedges and fresh dill",
			},
			PrepTime:   10,
			CookTime:   15,
			Servings:   4,
			Difficulty: model.DifficultyMedium,
			Category:   model.RecipeDinner,
			Tags:       []string{"Healthy", "Low-carb", "High-protein", "Keto-friendly"},
			Nutrition: model.NutritionInfo{
				Calories: 280, Protein: 35, Carbs: 6, Fat: 14, Fiber: 3, Sugar: 3, Sodium: 95,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// Data returns a LoadData that seeds every collection and makes the
// "Healthy Week" plan current. The selected date is left untouched.
func Data(now time.Time) planner.LoadData {
	plan := model.MealPlan{
		ID:        uuid.NewString(),
		Name:      "Healthy Week",
		StartDate: now,
		EndDate:   now.Add(7 * 24 * time.Hour),
		Meals:     []model.PlannedMeal{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	list := model.ShoppingList{
		ID:        uuid.NewString(),
		Name:      "Weekly Groceries",
		Items:     []model.ShoppingListItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	current := plan

	return planner.LoadData{
		Recipes:         planner.Some(Recipes(now)),
		MealPlans:       planner.Some([]model.MealPlan{plan}),
		ShoppingLists:   planner.Some([]model.ShoppingList{list}),
		CurrentMealPlan: planner.Some(&current),
	}
}
