// Package store persists planner state snapshots to SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dukerupert/mealplanner/internal/planner"
)

// Row keys in planner_state. Each maps to one State field.
const (
	fieldRecipes         = "recipes"
	fieldMealPlans       = "meal_plans"
	fieldShoppingLists   = "shopping_lists"
	fieldCurrentMealPlan = "current_meal_plan"
	fieldSelectedDate    = "selected_date"
)

type SnapshotStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db, now: time.Now}
}

// Save writes every field of s in one transaction.
func (s *SnapshotStore) Save(ctx context.Context, st planner.State) error {
	fields := []struct {
		name  string
		value any
	}{
		{fieldRecipes, st.Recipes},
		{fieldMealPlans, st.MealPlans},
		{fieldShoppingLists, st.ShoppingLists},
		{fieldCurrentMealPlan, st.CurrentMealPlan},
		{fieldSelectedDate, st.SelectedDate},
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := s.now().UTC()
	for _, f := range fields {
		payload, err := json.Marshal(f.value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", f.name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO planner_state (field, payload, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(field) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
			f.name, string(payload), now,
		)
		if err != nil {
			return fmt.Errorf("save %s: %w", f.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load returns a LoadData with only the stored fields set, or nil if
// nothing has been saved yet.
func (s *SnapshotStore) Load(ctx context.Context) (*planner.LoadData, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, payload FROM planner_state`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var ld planner.LoadData
	found := false
	for rows.Next() {
		var field, payload string
		if err := rows.Scan(&field, &payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}

		var target any
		switch field {
		case fieldRecipes:
			target = &ld.Recipes
		case fieldMealPlans:
			target = &ld.MealPlans
		case fieldShoppingLists:
			target = &ld.ShoppingLists
		case fieldCurrentMealPlan:
			target = &ld.CurrentMealPlan
		case fieldSelectedDate:
			target = &ld.SelectedDate
		default:
			continue
		}
		if err := json.Unmarshal([]byte(payload), target); err != nil {
			return nil, fmt.Errorf("decode %s: %w", field, err)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}

	if !found {
		return nil, nil
	}
	return &ld, nil
}
