// Package scheduler runs the nightly cost snapshot: every recipe's current
// total cost is recomputed and appended to its history, so cost drift is
// visible over time without any manual action.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/costing"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/store"
)

// Scheduler manages the recurring cost snapshot job.
type Scheduler struct {
	cron  *cron.Cron
	store *store.Store
	spec  string
	log   *zap.Logger
}

// New creates a scheduler with a standard five-field cron spec.
func New(s *store.Store, spec string, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:  cron.New(),
		store: s,
		spec:  spec,
		log:   log.Named("scheduler"),
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.snapshotCosts); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("cost history scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("cost history scheduler stopped")
}

// snapshotCosts recomputes and records every recipe's cost across all
// businesses. Recipes whose cost cannot be computed (cyclic references)
// are logged and skipped; appends are idempotent, so unchanged costs do
// not grow the history.
func (s *Scheduler) snapshotCosts() {
	now := time.Now().UTC()

	businesses, err := s.store.ListBusinesses()
	if err != nil {
		s.log.Error("list businesses for cost snapshot", zap.Error(err))
		return
	}

	var written, skipped int
	for _, business := range businesses {
		snap, err := s.store.Snapshot(business.ID)
		if err != nil {
			s.log.Error("load snapshot for cost history",
				zap.String("business_id", business.ID), zap.Error(err))
			continue
		}
		engine := costing.FromSnapshot(snap, s.log)

		for _, recipe := range snap.Recipes {
			total, err := engine.Cost(recipe)
			if err != nil {
				s.log.Warn("skipping cost snapshot for recipe",
					zap.String("recipe_id", recipe.ID), zap.Error(err))
				skipped++
				continue
			}
			appended, err := s.store.AppendCostHistory(recipe.ID, now, total)
			if err != nil {
				s.log.Error("append cost history",
					zap.String("recipe_id", recipe.ID), zap.Error(err))
				continue
			}
			if appended {
				written++
			}
		}
	}

	s.log.Info("cost snapshot finished", zap.Int("written", written), zap.Int("skipped", skipped))
}
