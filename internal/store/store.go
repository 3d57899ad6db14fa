// Package store persists the costing domain in SQLite and materializes the
// in-memory snapshots the engine computes over.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

var (
	// ErrNotFound is returned when a looked-up entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrItemReferenced blocks deleting a priced item still used by a recipe.
	ErrItemReferenced = errors.New("priced item is referenced by a recipe ingredient")
	// ErrRecipeReferenced blocks deleting a recipe used as a sub-recipe or menu item.
	ErrRecipeReferenced = errors.New("recipe is referenced by another recipe or menu item")
	// ErrInsufficientStock rejects a sale that would drive inventory negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store wraps the SQLite handle with domain-level operations.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New creates a store over an opened database.
func New(database *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: database, log: log.Named("store")}
}

// EnsureBusiness inserts a business row if it does not exist yet.
func (s *Store) EnsureBusiness(id, name string) error {
	_, err := s.db.Exec(`
		INSERT INTO businesses (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, name)
	if err != nil {
		return fmt.Errorf("ensure business: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO business_settings (business_id) VALUES (?)
		ON CONFLICT(business_id) DO NOTHING
	`, id)
	if err != nil {
		return fmt.Errorf("ensure business settings: %w", err)
	}
	return nil
}

// ListBusinesses returns all business ids and names, oldest first.
func (s *Store) ListBusinesses() ([]catalog.Business, error) {
	rows, err := s.db.Query(`SELECT id, name FROM businesses ORDER BY datetime(created_at), id`)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	businesses := make([]catalog.Business, 0)
	for rows.Next() {
		var b catalog.Business
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

// Settings loads a business's settings value object.
func (s *Store) Settings(businessID string) (catalog.BusinessSettings, error) {
	var settings catalog.BusinessSettings
	err := s.db.QueryRow(`
		SELECT working_days_per_month, hours_per_day, dishes_produced_per_month, dishes_sold_per_month
		FROM business_settings
		WHERE business_id = ?
	`, businessID).Scan(
		&settings.WorkingDaysPerMonth,
		&settings.HoursPerDay,
		&settings.DishesProducedPerMonth,
		&settings.DishesSoldPerMonth,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.BusinessSettings{}, ErrNotFound
	}
	if err != nil {
		return catalog.BusinessSettings{}, fmt.Errorf("query business settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces a business's settings.
func (s *Store) UpdateSettings(businessID string, settings catalog.BusinessSettings) error {
	result, err := s.db.Exec(`
		UPDATE business_settings
		SET
			working_days_per_month = ?,
			hours_per_day = ?,
			dishes_produced_per_month = ?,
			dishes_sold_per_month = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE business_id = ?
	`,
		settings.WorkingDaysPerMonth,
		settings.HoursPerDay,
		settings.DishesProducedPerMonth,
		settings.DishesSoldPerMonth,
		businessID,
	)
	if err != nil {
		return fmt.Errorf("update business settings: %w", err)
	}
	return requireAffected(result)
}

// Snapshot loads everything one business's cost computations consult.
func (s *Store) Snapshot(businessID string) (*catalog.Snapshot, error) {
	items, err := s.ListPricedItems(businessID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.ListRecipes(businessID)
	if err != nil {
		return nil, err
	}

	snap := catalog.NewSnapshot(businessID, items, recipes)

	if snap.Conversions, err = s.ListConversions(businessID); err != nil {
		return nil, err
	}
	if snap.Staff, err = s.ListStaff(businessID); err != nil {
		return nil, err
	}
	if snap.Overheads, err = s.ListOverheads(businessID); err != nil {
		return nil, err
	}
	if snap.Settings, err = s.Settings(businessID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		snap.Settings = catalog.BusinessSettings{}
	}
	if snap.MenuItems, err = s.ListMenuItems(businessID); err != nil {
		return nil, err
	}
	return snap, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
