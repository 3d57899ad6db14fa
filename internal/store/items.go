package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

const pricedItemColumns = `id, business_id, name, category, unit, unit_cost, yield_percent, stock_qty, min_threshold`

// CreatePricedItem inserts a catalog item, assigning an id when none is set.
func (s *Store) CreatePricedItem(item *catalog.PricedItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO priced_items (`+pricedItemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.BusinessID, item.Name, item.Category, item.Unit,
		item.UnitCost, item.YieldPercent, item.StockQty, item.MinThreshold)
	if err != nil {
		return fmt.Errorf("insert priced item: %w", err)
	}
	return nil
}

// UpdatePricedItem replaces the editable fields of an item.
func (s *Store) UpdatePricedItem(item catalog.PricedItem) error {
	result, err := s.db.Exec(`
		UPDATE priced_items
		SET
			name = ?,
			category = ?,
			unit = ?,
			unit_cost = ?,
			yield_percent = ?,
			stock_qty = ?,
			min_threshold = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, item.Name, item.Category, item.Unit, item.UnitCost,
		item.YieldPercent, item.StockQty, item.MinThreshold, item.ID)
	if err != nil {
		return fmt.Errorf("update priced item: %w", err)
	}
	return requireAffected(result)
}

// DeletePricedItem removes an item unless a recipe ingredient still
// references it.
func (s *Store) DeletePricedItem(id string) error {
	var referenced bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM recipe_ingredients
			WHERE kind = 'item' AND ref_id = ?
			LIMIT 1
		)
	`, id).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("check item references: %w", err)
	}
	if referenced {
		return ErrItemReferenced
	}

	result, err := s.db.Exec(`DELETE FROM priced_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete priced item: %w", err)
	}
	return requireAffected(result)
}

// PricedItem loads one item by id.
func (s *Store) PricedItem(id string) (catalog.PricedItem, error) {
	var item catalog.PricedItem
	err := s.db.QueryRow(`
		SELECT `+pricedItemColumns+` FROM priced_items WHERE id = ?
	`, id).Scan(&item.ID, &item.BusinessID, &item.Name, &item.Category, &item.Unit,
		&item.UnitCost, &item.YieldPercent, &item.StockQty, &item.MinThreshold)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.PricedItem{}, ErrNotFound
	}
	if err != nil {
		return catalog.PricedItem{}, fmt.Errorf("query priced item: %w", err)
	}
	return item, nil
}

// ListPricedItems returns a business's catalog ordered by name.
func (s *Store) ListPricedItems(businessID string) ([]catalog.PricedItem, error) {
	rows, err := s.db.Query(`
		SELECT `+pricedItemColumns+` FROM priced_items
		WHERE business_id = ?
		ORDER BY name, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query priced items: %w", err)
	}
	defer rows.Close()

	items := make([]catalog.PricedItem, 0)
	for rows.Next() {
		var item catalog.PricedItem
		if err := rows.Scan(&item.ID, &item.BusinessID, &item.Name, &item.Category, &item.Unit,
			&item.UnitCost, &item.YieldPercent, &item.StockQty, &item.MinThreshold); err != nil {
			return nil, fmt.Errorf("scan priced item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate priced items: %w", err)
	}
	return items, nil
}
