package model

type IngredientCategory string

const (
	CategoryProduce    IngredientCategory = "Produce"
	CategoryMeat       IngredientCategory = "Meat & Seafood"
	CategoryDairy      IngredientCategory = "Dairy & Eggs"
	CategoryPantry     IngredientCategory = "Pantry"
	CategoryFrozen     IngredientCategory = "Frozen"
	CategoryBakery     IngredientCategory = "Bakery"
	CategoryBeverages  IngredientCategory = "Beverages"
	CategoryCondiments IngredientCategory = "Condiments & Spices"
	CategoryOther      IngredientCategory = "Other"
)

// IngredientCategories lists every category in display order.
var IngredientCategories = []IngredientCategory{
	CategoryProduce,
	CategoryMeat,
	CategoryDairy,
	CategoryPantry,
	CategoryFrozen,
	CategoryBakery,
	CategoryBeverages,
	CategoryCondiments,
	CategoryOther,
}

func (c IngredientCategory) Valid() bool {
	for _, v := range IngredientCategories {
		if c == v {
			return true
		}
	}
	return false
}

type Ingredient struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Amount   float64            `json:"amount"`
	Unit     string             `json:"unit"`
	Category IngredientCategory `json:"category"`
}
