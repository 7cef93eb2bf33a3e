package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/mealplanner/internal/grocery"
	"github.com/dukerupert/mealplanner/internal/model"
	"github.com/dukerupert/mealplanner/internal/planner"
)

type RecipeHandler struct {
	store *planner.Store
	now   func() time.Time
}

func NewRecipeHandler(s *planner.Store) *RecipeHandler {
	return &RecipeHandler{store: s, now: time.Now}
}

type ingredientRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

type recipeRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Ingredients  []ingredientRequest `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	PrepTime     int                 `json:"prep_time"`
	CookTime     int                 `json:"cook_time"`
	Servings     int                 `json:"servings"`
	Difficulty   string              `json:"difficulty"`
	Category     string              `json:"category"`
	Tags         []string            `json:"tags"`
	Nutrition    model.NutritionInfo `json:"nutrition"`
	Image        string              `json:"image"`
}

// toIngredient assigns an id when missing and categorizes by name when no
// category is given.
func (req ingredientRequest) toIngredient() (model.Ingredient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Ingredient{}, errors.New("ingredient name is required")
	}
	if req.Amount < 0 {
		return model.Ingredient{}, fmt.Errorf("ingredient %q has negative amount", name)
	}

	cat := model.IngredientCategory(req.Category)
	if cat == "" {
		cat = grocery.Categorize(name)
	} else if !cat.Valid() {
		return model.Ingredient{}, fmt.Errorf("invalid ingredient category %q", req.Category)
	}

	id := req.ID
	if id == "" {
		id = newID()
	}
	return model.Ingredient{ID: id, Name: name, Amount: req.Amount, Unit: req.Unit, Category: cat}, nil
}

// toRecipe validates req and fills in defaults. id and timestamps are left
// to the caller.
func (req recipeRequest) toRecipe() (model.Recipe, error) {
	var r model.Recipe

	r.Name = strings.TrimSpace(req.Name)
	if r.Name == "" {
		return r, errors.New("name is required")
	}
	if req.PrepTime < 0 || req.CookTime < 0 {
		return r, errors.New("prep_time and cook_time must not be negative")
	}
	if req.Servings < 0 {
		return r, errors.New("servings must be positive")
	}
	if !validNutrition(req.Nutrition) {
		return r, errors.New("nutrition values must not be negative")
	}

	r.Difficulty = model.Difficulty(req.Difficulty)
	if r.Difficulty == "" {
		r.Difficulty = model.DifficultyEasy
	} else if !r.Difficulty.Valid() {
		return r, fmt.Errorf("invalid difficulty %q", req.Difficulty)
	}

	r.Category = model.RecipeCategory(req.Category)
	if r.Category == "" {
		r.Category = model.RecipeDinner
	} else if !r.Category.Valid() {
		return r, fmt.Errorf("invalid category %q", req.Category)
	}

	r.Ingredients = make([]model.Ingredient, 0, len(req.Ingredients))
	for _, ir := range req.Ingredients {
		ing, err := ir.toIngredient()
		if err != nil {
			return r, err
		}
		r.Ingredients = append(r.Ingredients, ing)
	}

	r.Description = req.Description
	r.Instructions = req.Instructions
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	r.Tags = req.Tags
	if r.Tags == nil {
		r.Tags = []string{}
	}
	r.PrepTime = req.PrepTime
	r.CookTime = req.CookTime
	r.Servings = req.Servings
	if r.Servings == 0 {
		r.Servings = 1
	}
	r.Nutrition = req.Nutrition
	r.Image = req.Image
	return r, nil
}

func validNutrition(n model.NutritionInfo) bool {
	return n.Calories >= 0 && n.Protein >= 0 && n.Carbs >= 0 && n.Fat >= 0 &&
		n.Fiber >= 0 && n.Sugar >= 0 && n.Sodium >= 0
}

// recipeResponse adds computed fields to a recipe for list and detail reads.
type recipeResponse struct {
	model.Recipe
	TotalTime int `json:"total_time"`
}

func newRecipeResponse(r model.Recipe) recipeResponse {
	return recipeResponse{Recipe: r, TotalTime: r.TotalTime()}
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	recipes := planner.FilterRecipes(h.store.Snapshot().Recipes, q.Get("q"), q.Get("category"))

	resp := make([]recipeResponse, len(recipes))
	for i, recipe := range recipes {
		resp[i] = newRecipeResponse(recipe)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, ok := h.store.Snapshot().Recipe(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, newRecipeResponse(recipe))
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	recipe, err := req.toRecipe()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := h.now()
	recipe.ID = newID()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	h.store.Dispatch(planner.AddRecipe{Recipe: recipe})
	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.store.Snapshot().Recipe(id); !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	var req recipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	recipe, err := req.toRecipe()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, ok := h.store.Apply(func(s planner.State) (planner.Action, bool) {
		existing, found := s.Recipe(id)
		if !found {
			return nil, false
		}
		recipe.ID = existing.ID
		recipe.CreatedAt = existing.CreatedAt
		recipe.UpdatedAt = h.now()
		return planner.UpdateRecipe{Recipe: recipe}, true
	})
	if !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.store.Snapshot().Recipe(id); !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	h.store.Dispatch(planner.DeleteRecipe{ID: id})
	w.WriteHeader(http.StatusNoContent)
}
