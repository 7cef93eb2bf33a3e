package model

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type RecipeCategory string

const (
	RecipeBreakfast RecipeCategory = "Breakfast"
	RecipeLunch     RecipeCategory = "Lunch"
	RecipeDinner    RecipeCategory = "Dinner"
	RecipeSnack     RecipeCategory = "Snack"
	RecipeDessert   RecipeCategory = "Dessert"
)

// RecipeCategories lists every recipe category in display order.
var RecipeCategories = []RecipeCategory{RecipeBreakfast, RecipeLunch, RecipeDinner, RecipeSnack, RecipeDessert}

func (c RecipeCategory) Valid() bool {
	for _, v := range RecipeCategories {
		if c == v {
			return true
		}
	}
	return false
}

// NutritionInfo is per serving. Sodium is in milligrams, everything else
// except calories in grams.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// Scale returns n with every field multiplied by factor.
func (n NutritionInfo) Scale(factor float64) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Carbs:    n.Carbs * factor,
		Fat:      n.Fat * factor,
		Fiber:    n.Fiber * factor,
		Sugar:    n.Sugar * factor,
		Sodium:   n.Sodium * factor,
	}
}

// Add returns the field-wise sum of n and o.
func (n NutritionInfo) Add(o NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Fiber:    n.Fiber + o.Fiber,
		Sugar:    n.Sugar + o.Sugar,
		Sodium:   n.Sodium + o.Sodium,
	}
}

type Recipe struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Ingredients  []Ingredient   `json:"ingredients"`
	Instructions []string       `json:"instructions"`
	PrepTime     int            `json:"prep_time"`
	CookTime     int            `json:"cook_time"`
	Servings     int            `json:"servings"`
	Difficulty   Difficulty     `json:"difficulty"`
	Category     RecipeCategory `json:"category"`
	Tags         []string       `json:"tags"`
	Nutrition    NutritionInfo  `json:"nutrition"`
	Image        string         `json:"image,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}
