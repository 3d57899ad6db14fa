package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

// ApplySale persists a computed sale atomically: the sale row, its frozen
// line items, the proportional inventory decrements and the menu sales
// counters all commit or roll back together. A decrement that would drive
// stock negative aborts the whole transaction with ErrInsufficientStock.
func (s *Store) ApplySale(sale catalog.Sale, stockDeltas map[string]float64, menuCounts map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sale transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO sales (id, business_id, created_at, total_revenue, total_cost, total_profit)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sale.ID, sale.BusinessID, sale.CreatedAt, sale.TotalRevenue, sale.TotalCost, sale.TotalProfit)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range sale.Items {
		_, err := tx.Exec(`
			INSERT INTO sale_items (sale_id, menu_item_id, quantity, price_at_time, cost_at_time)
			VALUES (?, ?, ?, ?, ?)
		`, sale.ID, item.MenuItemID, item.Quantity, item.PriceAtTime, item.CostAtTime)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert sale item: %w", err)
		}
	}

	for itemID, delta := range stockDeltas {
		result, err := tx.Exec(`
			UPDATE priced_items
			SET stock_qty = stock_qty - ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND stock_qty >= ?
		`, delta, itemID, delta)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("decrement stock for %s: %w", itemID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("decrement stock for %s: %w", itemID, err)
		}
		if affected == 0 {
			_ = tx.Rollback()
			return fmt.Errorf("item %s: %w", itemID, ErrInsufficientStock)
		}

		var remaining, threshold float64
		if err := tx.QueryRow(`
			SELECT stock_qty, min_threshold FROM priced_items WHERE id = ?
		`, itemID).Scan(&remaining, &threshold); err == nil && threshold > 0 && remaining < threshold {
			s.log.Warn("stock below minimum threshold",
				zap.String("item_id", itemID),
				zap.Float64("remaining", remaining),
				zap.Float64("min_threshold", threshold))
		}
	}

	for menuItemID, count := range menuCounts {
		result, err := tx.Exec(`
			UPDATE menu_items SET sales_count = sales_count + ? WHERE id = ?
		`, count, menuItemID)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("increment sales count for %s: %w", menuItemID, err)
		}
		if err := requireAffected(result); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("increment sales count for %s: %w", menuItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sale transaction: %w", err)
	}
	return nil
}

// ListSales returns a business's sales, newest first, with line items.
func (s *Store) ListSales(businessID string) ([]catalog.Sale, error) {
	rows, err := s.db.Query(`
		SELECT id, business_id, created_at, total_revenue, total_cost, total_profit
		FROM sales
		WHERE business_id = ?
		ORDER BY datetime(created_at) DESC, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	sales := make([]catalog.Sale, 0)
	for rows.Next() {
		var sale catalog.Sale
		if err := rows.Scan(&sale.ID, &sale.BusinessID, &sale.CreatedAt,
			&sale.TotalRevenue, &sale.TotalCost, &sale.TotalProfit); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	for i := range sales {
		if sales[i].Items, err = s.loadSaleItems(sales[i].ID); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (s *Store) loadSaleItems(saleID string) ([]catalog.SaleItem, error) {
	rows, err := s.db.Query(`
		SELECT menu_item_id, quantity, price_at_time, cost_at_time
		FROM sale_items
		WHERE sale_id = ?
		ORDER BY id
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	items := make([]catalog.SaleItem, 0)
	for rows.Next() {
		var item catalog.SaleItem
		if err := rows.Scan(&item.MenuItemID, &item.Quantity, &item.PriceAtTime, &item.CostAtTime); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}
	return items, nil
}

// costHistoryEpsilon bounds the float comparison of the idempotency guard.
const costHistoryEpsilon = 1e-9

// AppendCostHistory appends a cost point to a recipe's history unless the
// cost equals the last recorded point, keeping the history free of
// duplicate runs. Returns whether a point was written.
func (s *Store) AppendCostHistory(recipeID string, at time.Time, cost float64) (bool, error) {
	var last float64
	err := s.db.QueryRow(`
		SELECT cost FROM recipe_cost_history
		WHERE recipe_id = ?
		ORDER BY datetime(recorded_at) DESC, id DESC
		LIMIT 1
	`, recipeID).Scan(&last)
	switch {
	case err == nil && math.Abs(last-cost) < costHistoryEpsilon:
		return false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("query last cost point: %w", err)
	}

	if _, err := s.db.Exec(`
		INSERT INTO recipe_cost_history (recipe_id, recorded_at, cost)
		VALUES (?, ?, ?)
	`, recipeID, at, cost); err != nil {
		return false, fmt.Errorf("append cost history: %w", err)
	}
	return true, nil
}

// CostHistory returns a recipe's cost history, oldest first.
func (s *Store) CostHistory(recipeID string) ([]catalog.CostPoint, error) {
	rows, err := s.db.Query(`
		SELECT recorded_at, cost FROM recipe_cost_history
		WHERE recipe_id = ?
		ORDER BY datetime(recorded_at), id
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query cost history: %w", err)
	}
	defer rows.Close()

	points := make([]catalog.CostPoint, 0)
	for rows.Next() {
		var p catalog.CostPoint
		if err := rows.Scan(&p.Date, &p.Cost); err != nil {
			return nil, fmt.Errorf("scan cost point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cost history: %w", err)
	}
	return points, nil
}
