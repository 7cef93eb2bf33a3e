package websocket

import "github.com/dukerupert/mealplanner/internal/planner"

// Feed returns a store listener that broadcasts every dispatched action.
func Feed(h *Hub) planner.Listener {
	return func(a planner.Action, _ planner.State) {
		c := planner.Describe(a)
		h.Broadcast(NewMessage(c.Entity, c.Action, c.ID, map[string]any{"kind": string(a.Kind())}))
	}
}
