package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
	"github.com/dukerupert/mealplanner/internal/planner"
)

type ShoppingListHandler struct {
	store *planner.Store
	now   func() time.Time
}

func NewShoppingListHandler(s *planner.Store) *ShoppingListHandler {
	return &ShoppingListHandler{store: s, now: time.Now}
}

type shoppingItemRequest struct {
	ID         string            `json:"id"`
	Ingredient ingredientRequest `json:"ingredient"`
	Quantity   float64           `json:"quantity"`
	Purchased  bool              `json:"purchased"`
	Notes      string            `json:"notes"`
}

type shoppingListRequest struct {
	Name       string                `json:"name"`
	Items      []shoppingItemRequest `json:"items"`
	MealPlanID string                `json:"meal_plan_id"`
	Completed  bool                  `json:"completed"`
}

type listSummary struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name"`
	TotalItems           int                     `json:"total_items"`
	PurchasedItems       int                     `json:"purchased_items"`
	CompletionPercentage int                     `json:"completion_percentage"`
	Groups               []planner.CategoryGroup `json:"groups"`
}

func (req shoppingItemRequest) toItem() (model.ShoppingListItem, error) {
	ing, err := req.Ingredient.toIngredient()
	if err != nil {
		return model.ShoppingListItem{}, err
	}
	if req.Quantity < 0 {
		return model.ShoppingListItem{}, fmt.Errorf("item %q has negative quantity", ing.Name)
	}

	id := req.ID
	if id == "" {
		id = newID()
	}
	return model.ShoppingListItem{
		ID:         id,
		Ingredient: ing,
		Quantity:   req.Quantity,
		Purchased:  req.Purchased,
		Notes:      req.Notes,
	}, nil
}

func buildItems(reqs []shoppingItemRequest) ([]model.ShoppingListItem, error) {
	items := make([]model.ShoppingListItem, 0, len(reqs))
	for _, ir := range reqs {
		item, err := ir.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (h *ShoppingListHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().ShoppingLists)
}

func (h *ShoppingListHandler) Get(w http.ResponseWriter, r *http.Request) {
	list, ok := h.store.Snapshot().ShoppingList(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "shopping list not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ShoppingListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shoppingListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.MealPlanID != "" {
		if _, ok := h.store.Snapshot().MealPlan(req.MealPlanID); !ok {
			writeError(w, http.StatusBadRequest, "unknown meal_plan_id")
			return
		}
	}
	items, err := buildItems(req.Items)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := h.now()
	list := model.ShoppingList{
		ID:         newID(),
		Name:       name,
		Items:      items,
		MealPlanID: req.MealPlanID,
		Completed:  req.Completed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	h.store.Dispatch(planner.AddShoppingList{List: list})
	writeJSON(w, http.StatusCreated, list)
}

// Update replaces the list's name, completion flag and, when present, its
// items. Items left out of the request keep their state as of dispatch.
func (h *ShoppingListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.store.Snapshot().ShoppingList(id); !ok {
		writeError(w, http.StatusNotFound, "shopping list not found")
		return
	}

	var req shoppingListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var items []model.ShoppingListItem
	if req.Items != nil {
		var err error
		if items, err = buildItems(req.Items); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var list model.ShoppingList
	var fail *apiError
	h.store.Apply(func(s planner.State) (planner.Action, bool) {
		existing, ok := s.ShoppingList(id)
		if !ok {
			fail = &apiError{http.StatusNotFound, "shopping list not found"}
			return nil, false
		}
		if req.MealPlanID != "" {
			if _, ok := s.MealPlan(req.MealPlanID); !ok {
				fail = &apiError{http.StatusBadRequest, "unknown meal_plan_id"}
				return nil, false
			}
		}

		list = existing
		if name := strings.TrimSpace(req.Name); name != "" {
			list.Name = name
		}
		if req.MealPlanID != "" {
			list.MealPlanID = req.MealPlanID
		}
		if items != nil {
			list.Items = items
		}
		list.Completed = req.Completed
		list.UpdatedAt = h.now()
		return planner.UpdateShoppingList{List: list}, true
	})
	if fail != nil {
		fail.write(w)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ShoppingListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.store.Snapshot().ShoppingList(id); !ok {
		writeError(w, http.StatusNotFound, "shopping list not found")
		return
	}

	h.store.Dispatch(planner.DeleteShoppingList{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// TogglePurchased flips one item's purchased flag and returns the list.
func (h *ShoppingListHandler) TogglePurchased(w http.ResponseWriter, r *http.Request) {
	listID, itemID := r.PathValue("id"), r.PathValue("item_id")

	var fail *apiError
	next, _ := h.store.Apply(func(s planner.State) (planner.Action, bool) {
		list, ok := s.ShoppingList(listID)
		if !ok {
			fail = &apiError{http.StatusNotFound, "shopping list not found"}
			return nil, false
		}
		if !hasItem(list, itemID) {
			fail = &apiError{http.StatusNotFound, "item not found"}
			return nil, false
		}
		return planner.ToggleItemPurchased{ListID: listID, ItemID: itemID}, true
	})
	if fail != nil {
		fail.write(w)
		return
	}

	list, _ := next.ShoppingList(listID)
	writeJSON(w, http.StatusOK, list)
}

func (h *ShoppingListHandler) Summary(w http.ResponseWriter, r *http.Request) {
	list, ok := h.store.Snapshot().ShoppingList(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "shopping list not found")
		return
	}

	purchased := 0
	for _, item := range list.Items {
		if item.Purchased {
			purchased++
		}
	}
	groups := planner.GroupByCategory(list.Items)
	if groups == nil {
		groups = []planner.CategoryGroup{}
	}
	writeJSON(w, http.StatusOK, listSummary{
		ID:                   list.ID,
		Name:                 list.Name,
		TotalItems:           len(list.Items),
		PurchasedItems:       purchased,
		CompletionPercentage: planner.CompletionPercentage(list),
		Groups:               groups,
	})
}

func hasItem(list model.ShoppingList, itemID string) bool {
	for _, item := range list.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}
