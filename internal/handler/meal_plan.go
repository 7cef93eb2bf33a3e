package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/mealplanner/internal/model"
	"github.com/dukerupert/mealplanner/internal/planner"
)

type MealPlanHandler struct {
	store *planner.Store
	now   func() time.Time
}

func NewMealPlanHandler(s *planner.Store) *MealPlanHandler {
	return &MealPlanHandler{store: s, now: time.Now}
}

type mealPlanRequest struct {
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	SetCurrent bool   `json:"set_current"`
}

func (req mealPlanRequest) parse() (name string, start, end time.Time, err error) {
	name = strings.TrimSpace(req.Name)
	if name == "" {
		return "", start, end, errors.New("name is required")
	}
	if start, err = parseDate(req.StartDate); err != nil {
		return "", start, end, fmt.Errorf("invalid start_date %q", req.StartDate)
	}
	if end, err = parseDate(req.EndDate); err != nil {
		return "", start, end, fmt.Errorf("invalid end_date %q", req.EndDate)
	}
	if end.Before(start) {
		return "", start, end, errors.New("end_date must not be before start_date")
	}
	return name, start, end, nil
}

type plannedMealRequest struct {
	Date     string  `json:"date"`
	MealType string  `json:"meal_type"`
	RecipeID string  `json:"recipe_id"`
	Servings float64 `json:"servings"`
	Notes    *string `json:"notes"`
}

type currentPlanRequest struct {
	ID string `json:"id"`
}

func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().MealPlans)
}

func (h *MealPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.store.Snapshot().MealPlan(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req mealPlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name, start, end, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := h.now()
	plan := model.MealPlan{
		ID:        newID(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Meals:     []model.PlannedMeal{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	h.store.Dispatch(planner.AddMealPlan{Plan: plan})
	if req.SetCurrent {
		h.makeCurrent(plan.ID)
	}
	writeJSON(w, http.StatusCreated, plan)
}

// Update renames or reschedules a plan. Its meals are kept.
func (h *MealPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.store.Snapshot().MealPlan(id); !ok {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}

	var req mealPlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name, start, end, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var plan model.MealPlan
	_, ok := h.store.Apply(func(s planner.State) (planner.Action, bool) {
		existing, found := s.MealPlan(id)
		if !found {
			return nil, false
		}
		plan = existing
		plan.Name = name
		plan.StartDate = start
		plan.EndDate = end
		plan.UpdatedAt = h.now()
		return planner.UpdateMealPlan{Plan: plan}, true
	})
	if !ok {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}
	if req.SetCurrent {
		h.makeCurrent(id)
	}
	writeJSON(w, http.StatusOK, plan)
}

// makeCurrent marks the stored plan with id as current, using its value at
// dispatch time.
func (h *MealPlanHandler) makeCurrent(id string) (model.MealPlan, bool) {
	var plan model.MealPlan
	_, ok := h.store.Apply(func(s planner.State) (planner.Action, bool) {
		found, ok := s.MealPlan(id)
		if !ok {
			return nil, false
		}
		plan = found
		return planner.SetCurrentMealPlan{Plan: &plan}, true
	})
	return plan, ok
}

func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.store.Snapshot().MealPlan(id); !ok {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}

	h.store.Dispatch(planner.DeleteMealPlan{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (h *MealPlanHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	current := h.store.Snapshot().CurrentMealPlan
	if current == nil {
		writeError(w, http.StatusNotFound, "no current meal plan")
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (h *MealPlanHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var req currentPlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	plan, ok := h.makeCurrent(req.ID)
	if !ok {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *MealPlanHandler) ClearCurrent(w http.ResponseWriter, r *http.Request) {
	h.store.Dispatch(planner.SetCurrentMealPlan{Plan: nil})
	w.WriteHeader(http.StatusNoContent)
}

// AddMeal plans a recipe into the current plan. The meal keeps its own copy
// of the recipe as it is now.
func (h *MealPlanHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	if h.store.Snapshot().CurrentMealPlan == nil {
		writeError(w, http.StatusConflict, "no current meal plan")
		return
	}

	var req plannedMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	mealType := model.MealType(req.MealType)
	if !mealType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid meal_type")
		return
	}
	if req.Servings < 0 {
		writeError(w, http.StatusBadRequest, "servings must be positive")
		return
	}

	meal := model.PlannedMeal{
		ID:       newID(),
		Date:     date,
		MealType: mealType,
		Servings: req.Servings,
	}
	if meal.Servings == 0 {
		meal.Servings = 1
	}
	if req.Notes != nil {
		meal.Notes = *req.Notes
	}

	var fail *apiError
	h.store.Apply(func(s planner.State) (planner.Action, bool) {
		if s.CurrentMealPlan == nil {
			fail = &apiError{http.StatusConflict, "no current meal plan"}
			return nil, false
		}
		recipe, ok := s.Recipe(req.RecipeID)
		if !ok {
			fail = &apiError{http.StatusBadRequest, "unknown recipe_id"}
			return nil, false
		}
		meal.Recipe = recipe
		return planner.AddPlannedMeal{Meal: meal}, true
	})
	if fail != nil {
		fail.write(w)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

// UpdateMeal changes the fields present in the request and keeps the rest.
// A new recipe_id takes a fresh copy of that recipe.
func (h *MealPlanHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if fail := checkMeal(h.store.Snapshot(), id); fail != nil {
		fail.write(w)
		return
	}

	var req plannedMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		if date, err = parseDate(req.Date); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
	}
	mealType := model.MealType(req.MealType)
	if mealType != "" && !mealType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid meal_type")
		return
	}
	if req.Servings < 0 {
		writeError(w, http.StatusBadRequest, "servings must be positive")
		return
	}

	var meal model.PlannedMeal
	var fail *apiError
	h.store.Apply(func(s planner.State) (planner.Action, bool) {
		if fail = checkMeal(s, id); fail != nil {
			return nil, false
		}
		meal, _ = s.PlannedMeal(id)
		if req.RecipeID != "" {
			recipe, ok := s.Recipe(req.RecipeID)
			if !ok {
				fail = &apiError{http.StatusBadRequest, "unknown recipe_id"}
				return nil, false
			}
			meal.Recipe = recipe
		}
		if !date.IsZero() {
			meal.Date = date
		}
		if mealType != "" {
			meal.MealType = mealType
		}
		if req.Servings > 0 {
			meal.Servings = req.Servings
		}
		if req.Notes != nil {
			meal.Notes = *req.Notes
		}
		return planner.UpdatePlannedMeal{Meal: meal}, true
	})
	if fail != nil {
		fail.write(w)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (h *MealPlanHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var fail *apiError
	h.store.Apply(func(s planner.State) (planner.Action, bool) {
		if fail = checkMeal(s, id); fail != nil {
			return nil, false
		}
		return planner.DeletePlannedMeal{ID: id}, true
	})
	if fail != nil {
		fail.write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checkMeal reports why meal id cannot be edited in s, or nil if it can.
func checkMeal(s planner.State, id string) *apiError {
	if s.CurrentMealPlan == nil {
		return &apiError{http.StatusConflict, "no current meal plan"}
	}
	if _, ok := s.PlannedMeal(id); !ok {
		return &apiError{http.StatusNotFound, "planned meal not found"}
	}
	return nil
}

// MealsOn lists the current plan's meals for ?date= (default: the selected
// date), optionally narrowed to one ?meal_type=.
func (h *MealPlanHandler) MealsOn(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	date, err := dateParam(r, "date", snap.SelectedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	meals := []model.PlannedMeal{}
	if snap.CurrentMealPlan == nil {
		writeJSON(w, http.StatusOK, meals)
		return
	}

	var found []model.PlannedMeal
	if mt := r.URL.Query().Get("meal_type"); mt != "" {
		mealType := model.MealType(mt)
		if !mealType.Valid() {
			writeError(w, http.StatusBadRequest, "invalid meal_type")
			return
		}
		found = planner.MealsForSlot(snap.CurrentMealPlan.Meals, date, mealType)
	} else {
		found = planner.MealsOn(snap.CurrentMealPlan.Meals, date)
	}
	if found != nil {
		meals = found
	}
	writeJSON(w, http.StatusOK, meals)
}

// Week summarizes the current plan's week containing ?start= (default: the
// selected date).
func (h *MealPlanHandler) Week(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	day, err := dateParam(r, "start", snap.SelectedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start")
		return
	}
	writeJSON(w, http.StatusOK, planner.Week(snap.CurrentMealPlan, day))
}
