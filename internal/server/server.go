package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/mealplanner/internal/handler"
	"github.com/dukerupert/mealplanner/internal/middleware"
	"github.com/dukerupert/mealplanner/internal/planner"
	ws "github.com/dukerupert/mealplanner/internal/websocket"
)

type Server struct {
	store          *planner.Store
	hub            *ws.Hub
	stateH         *handler.StateHandler
	recipeH        *handler.RecipeHandler
	mealPlanH      *handler.MealPlanHandler
	shoppingListH  *handler.ShoppingListHandler
	allowedOrigins []string
	logger         *slog.Logger
}

// New wires the HTTP handlers to store and subscribes the websocket feed to
// its dispatches.
func New(store *planner.Store, allowedOrigins []string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	store.Subscribe(ws.Feed(hub))

	return &Server{
		store:          store,
		hub:            hub,
		stateH:         handler.NewStateHandler(store, logger.With("component", "state")),
		recipeH:        handler.NewRecipeHandler(store),
		mealPlanH:      handler.NewMealPlanHandler(store),
		shoppingListH:  handler.NewShoppingListHandler(store),
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.allowedOrigins, s.logger.With("component", "websocket")))

	s.registerAPIRoutes(mux)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	// State
	mux.HandleFunc("GET /api/state", s.stateH.Get)
	mux.HandleFunc("POST /api/actions", s.stateH.Dispatch)
	mux.HandleFunc("PUT /api/selected-date", s.stateH.SetSelectedDate)
	mux.HandleFunc("GET /api/dashboard", s.stateH.Dashboard)

	// Recipes
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("POST /api/recipes", s.recipeH.Create)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.recipeH.Delete)

	// Meal plans
	mux.HandleFunc("GET /api/meal-plans", s.mealPlanH.List)
	mux.HandleFunc("POST /api/meal-plans", s.mealPlanH.Create)
	mux.HandleFunc("GET /api/meal-plans/{id}", s.mealPlanH.Get)
	mux.HandleFunc("PUT /api/meal-plans/{id}", s.mealPlanH.Update)
	mux.HandleFunc("DELETE /api/meal-plans/{id}", s.mealPlanH.Delete)
	mux.HandleFunc("GET /api/meal-plans/current", s.mealPlanH.GetCurrent)
	mux.HandleFunc("PUT /api/meal-plans/current", s.mealPlanH.SetCurrent)
	mux.HandleFunc("DELETE /api/meal-plans/current", s.mealPlanH.ClearCurrent)

	// Planned meals (current plan)
	mux.HandleFunc("POST /api/meal-plans/current/meals", s.mealPlanH.AddMeal)
	mux.HandleFunc("PUT /api/meal-plans/current/meals/{id}", s.mealPlanH.UpdateMeal)
	mux.HandleFunc("DELETE /api/meal-plans/current/meals/{id}", s.mealPlanH.DeleteMeal)
	mux.HandleFunc("GET /api/meals", s.mealPlanH.MealsOn)
	mux.HandleFunc("GET /api/meals/week", s.mealPlanH.Week)

	// Shopping lists
	mux.HandleFunc("GET /api/shopping-lists", s.shoppingListH.List)
	mux.HandleFunc("POST /api/shopping-lists", s.shoppingListH.Create)
	mux.HandleFunc("GET /api/shopping-lists/{id}", s.shoppingListH.Get)
	mux.HandleFunc("PUT /api/shopping-lists/{id}", s.shoppingListH.Update)
	mux.HandleFunc("DELETE /api/shopping-lists/{id}", s.shoppingListH.Delete)
	mux.HandleFunc("POST /api/shopping-lists/{id}/items/{item_id}/purchase", s.shoppingListH.TogglePurchased)
	mux.HandleFunc("GET /api/shopping-lists/{id}/summary", s.shoppingListH.Summary)
}
