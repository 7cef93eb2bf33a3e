package grocery

import (
	"strings"

	"github.com/dukerupert/mealplanner/internal/model"
)

// Categorize returns the ingredient category for the given ingredient name.
// It performs case-insensitive matching: exact match first, then substring match.
// Falls back to Other if no match is found.
func Categorize(name string) model.IngredientCategory {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return model.CategoryOther
	}

	if cat, ok := exactMatch[n]; ok {
		return cat
	}

	for _, entry := range substringMatches {
		if strings.Contains(n, entry.keyword) {
			return entry.category
		}
	}

	return model.CategoryOther
}

const (
	produce    = model.CategoryProduce
	meat       = model.CategoryMeat
	dairy      = model.CategoryDairy
	pantry     = model.CategoryPantry
	frozen     = model.CategoryFrozen
	bakery     = model.CategoryBakery
	beverages  = model.CategoryBeverages
	condiments = model.CategoryCondiments
)

var exactMatch = map[string]model.IngredientCategory{
	// Produce
	"apple":       produce,
	"apples":      produce,
	"banana":      produce,
	"bananas":     produce,
	"lemon":       produce,
	"lemons":      produce,
	"lemon juice": produce,
	"lime":        produce,
	"limes":       produce,
	"avocado":     produce,
	"tomato":      produce,
	"tomatoes":    produce,
	"potato":      produce,
	"potatoes":    produce,
	"onion":       produce,
	"red onion":   produce,
	"garlic":      produce,
	"lettuce":     produce,
	"spinach":     produce,
	"kale":        produce,
	"broccoli":    produce,
	"carrots":     produce,
	"celery":      produce,
	"cucumber":    produce,
	"mushrooms":   produce,
	"asparagus":   produce,
	"zucchini":    produce,
	"cilantro":    produce,
	"basil":       produce,
	"parsley":     produce,
	"dill":        produce,
	"fresh dill":  produce,
	"ginger":      produce,
	"green beans": produce,

	// Dairy & Eggs
	"milk":           dairy,
	"eggs":           dairy,
	"egg":            dairy,
	"butter":         dairy,
	"cheese":         dairy,
	"feta cheese":    dairy,
	"parmesan":       dairy,
	"yogurt":         dairy,
	"greek yogurt":   dairy,
	"sour cream":     dairy,
	"heavy cream":    dairy,
	"cottage cheese": dairy,

	// Meat & Seafood
	"chicken":       meat,
	"beef":          meat,
	"pork":          meat,
	"turkey":        meat,
	"bacon":         meat,
	"sausage":       meat,
	"ham":           meat,
	"steak":         meat,
	"salmon":        meat,
	"shrimp":        meat,
	"tuna":          meat,
	"cod":           meat,
	"ground beef":   meat,
	"ground turkey": meat,
	"lamb":          meat,
	"tofu":          meat,

	// Bakery
	"bread":     bakery,
	"bagels":    bakery,
	"tortillas": bakery,
	"buns":      bakery,
	"pita":      bakery,
	"naan":      bakery,

	// Pantry
	"rice":          pantry,
	"quinoa":        pantry,
	"pasta":         pantry,
	"flour":         pantry,
	"sugar":         pantry,
	"olive oil":     pantry,
	"honey":         pantry,
	"peanut butter": pantry,
	"rolled oats":   pantry,
	"oats":          pantry,
	"chia seeds":    pantry,
	"almonds":       pantry,
	"walnuts":       pantry,
	"lentils":       pantry,
	"chickpeas":     pantry,
	"broth":         pantry,
	"maple syrup":   pantry,

	// Frozen
	"ice cream":      frozen,
	"frozen peas":    frozen,
	"frozen berries": frozen,

	// Beverages
	"water":           beverages,
	"juice":           beverages,
	"orange juice":    beverages,
	"coffee":          beverages,
	"tea":             beverages,
	"sparkling water": beverages,
	"wine":            beverages,

	// Condiments & Spices
	"salt":         condiments,
	"pepper":       condiments,
	"black pepper": condiments,
	"cumin":        condiments,
	"paprika":      condiments,
	"oregano":      condiments,
	"cinnamon":     condiments,
	"vinegar":      condiments,
	"soy sauce":    condiments,
	"ketchup":      condiments,
	"mustard":      condiments,
	"mayonnaise":   condiments,
	"hot sauce":    condiments,
	"salsa":        condiments,
}

type substringEntry struct {
	keyword  string
	category model.IngredientCategory
}

// Ordered with longer/more-specific keywords first for deterministic priority.
var substringMatches = []substringEntry{
	// Frozen wins over whatever is frozen
	{"frozen", frozen},
	{"ice cream", frozen},

	// Condiments & Spices
	{"soy sauce", condiments},
	{"hot sauce", condiments},
	{"vinegar", condiments},
	{"seasoning", condiments},
	{"spice", condiments},
	{"ground cumin", condiments},
	{"chili flakes", condiments},
	{"dressing", condiments},

	// Meat & Seafood
	{"chicken breast", meat},
	{"chicken thigh", meat},
	{"ground beef", meat},
	{"ground turkey", meat},
	{"pork chop", meat},
	{"fillet", meat},
	{"salmon", meat},
	{"shrimp", meat},
	{"chicken", meat},
	{"beef", meat},

	// Dairy & Eggs
	{"cream cheese", dairy},
	{"sour cream", dairy},
	{"greek yogurt", dairy},
	{"almond milk", dairy},
	{"oat milk", dairy},
	{"yogurt", dairy},
	{"cheese", dairy},
	{"milk", dairy},
	{"butter", dairy},
	{"cream", dairy},
	{"egg", dairy},

	// Produce
	{"baby spinach", produce},
	{"green onion", produce},
	{"sweet potato", produce},
	{"bell pepper", produce},
	{"cherry tomato", produce},
	{"lemon", produce},
	{"lime", produce},
	{"berries", produce},
	{"berry", produce},
	{"fruit", produce},
	{"herb", produce},
	{"lettuce", produce},
	{"spinach", produce},
	{"tomato", produce},
	{"potato", produce},
	{"onion", produce},
	{"garlic", produce},
	{"carrot", produce},
	{"cucumber", produce},

	// Bakery
	{"sourdough", bakery},
	{"bread", bakery},
	{"bagel", bakery},
	{"tortilla", bakery},
	{"bun", bakery},
	{"roll", bakery},

	// Pantry
	{"peanut butter", pantry},
	{"olive oil", pantry},
	{"oil", pantry},
	{"canned", pantry},
	{"oats", pantry},
	{"rice", pantry},
	{"pasta", pantry},
	{"noodle", pantry},
	{"flour", pantry},
	{"sugar", pantry},
	{"broth", pantry},
	{"stock", pantry},
	{"bean", pantry},
	{"lentil", pantry},
	{"seeds", pantry},
	{"nuts", pantry},
	{"sauce", pantry},

	// Beverages
	{"sparkling", beverages},
	{"juice", beverages},
	{"coffee", beverages},
	{"tea", beverages},
	{"water", beverages},
	{"soda", beverages},
}
