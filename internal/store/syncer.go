package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/mealplanner/internal/planner"
)

const saveTimeout = 5 * time.Second

// Syncer writes planner states to a SnapshotStore off the dispatch path.
// Only the most recent pending state is kept.
type Syncer struct {
	snapshots *SnapshotStore
	logger    *slog.Logger
	pending   chan planner.State
}

func NewSyncer(snapshots *SnapshotStore, logger *slog.Logger) *Syncer {
	return &Syncer{
		snapshots: snapshots,
		logger:    logger.With("component", "syncer"),
		pending:   make(chan planner.State, 1),
	}
}

// Listener adapts the syncer to planner.Store.Subscribe.
func (s *Syncer) Listener() planner.Listener {
	return func(_ planner.Action, next planner.State) {
		s.Notify(next)
	}
}

// Notify queues st, replacing any state not yet written. Never blocks.
func (s *Syncer) Notify(st planner.State) {
	for {
		select {
		case s.pending <- st:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

// Run writes queued states until ctx is cancelled, then flushes whatever is
// still pending.
func (s *Syncer) Run(ctx context.Context) {
	s.logger.Info("snapshot syncer started")
	for {
		select {
		case <-ctx.Done():
			s.flush()
			s.logger.Info("snapshot syncer stopped")
			return
		case st := <-s.pending:
			s.save(st)
		}
	}
}

func (s *Syncer) flush() {
	select {
	case st := <-s.pending:
		s.save(st)
	default:
	}
}

// save is not tied to Run's context so a write in flight at shutdown completes.
func (s *Syncer) save(st planner.State) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.snapshots.Save(ctx, st); err != nil {
		s.logger.Error("save snapshot", "error", err)
		return
	}
	s.logger.Debug("snapshot saved",
		"recipes", len(st.Recipes),
		"meal_plans", len(st.MealPlans),
		"shopping_lists", len(st.ShoppingLists),
	)
}
