package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

// AddConversion stores a custom unit conversion.
func (s *Store) AddConversion(c *catalog.UnitConversion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO unit_conversions (id, business_id, from_unit, to_unit, factor, item_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.BusinessID, c.FromUnit, c.ToUnit, c.Factor, c.ItemID)
	if err != nil {
		return fmt.Errorf("insert unit conversion: %w", err)
	}
	return nil
}

// DeleteConversion removes a custom unit conversion.
func (s *Store) DeleteConversion(id string) error {
	result, err := s.db.Exec(`DELETE FROM unit_conversions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete unit conversion: %w", err)
	}
	return requireAffected(result)
}

// ListConversions returns a business's custom unit conversions.
func (s *Store) ListConversions(businessID string) ([]catalog.UnitConversion, error) {
	rows, err := s.db.Query(`
		SELECT id, business_id, from_unit, to_unit, factor, item_id
		FROM unit_conversions
		WHERE business_id = ?
		ORDER BY from_unit, to_unit, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query unit conversions: %w", err)
	}
	defer rows.Close()

	conversions := make([]catalog.UnitConversion, 0)
	for rows.Next() {
		var c catalog.UnitConversion
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.FromUnit, &c.ToUnit, &c.Factor, &c.ItemID); err != nil {
			return nil, fmt.Errorf("scan unit conversion: %w", err)
		}
		conversions = append(conversions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unit conversions: %w", err)
	}
	return conversions, nil
}

// SaveStaff inserts or updates a staff member.
func (s *Store) SaveStaff(m *catalog.StaffMember) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO staff_members (id, business_id, name, monthly_salary)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			monthly_salary = excluded.monthly_salary
	`, m.ID, m.BusinessID, m.Name, m.MonthlySalary)
	if err != nil {
		return fmt.Errorf("save staff member: %w", err)
	}
	return nil
}

// DeleteStaff removes a staff member.
func (s *Store) DeleteStaff(id string) error {
	result, err := s.db.Exec(`DELETE FROM staff_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete staff member: %w", err)
	}
	return requireAffected(result)
}

// ListStaff returns a business's staff ordered by name.
func (s *Store) ListStaff(businessID string) ([]catalog.StaffMember, error) {
	rows, err := s.db.Query(`
		SELECT id, business_id, name, monthly_salary
		FROM staff_members
		WHERE business_id = ?
		ORDER BY name, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query staff members: %w", err)
	}
	defer rows.Close()

	staff := make([]catalog.StaffMember, 0)
	for rows.Next() {
		var m catalog.StaffMember
		if err := rows.Scan(&m.ID, &m.BusinessID, &m.Name, &m.MonthlySalary); err != nil {
			return nil, fmt.Errorf("scan staff member: %w", err)
		}
		staff = append(staff, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff members: %w", err)
	}
	return staff, nil
}

// SaveOverhead inserts or updates an overhead cost pool.
func (s *Store) SaveOverhead(o *catalog.Overhead) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO overheads (id, business_id, name, type, monthly_cost)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			monthly_cost = excluded.monthly_cost
	`, o.ID, o.BusinessID, o.Name, o.Type, o.MonthlyCost)
	if err != nil {
		return fmt.Errorf("save overhead: %w", err)
	}
	return nil
}

// DeleteOverhead removes an overhead cost pool.
func (s *Store) DeleteOverhead(id string) error {
	result, err := s.db.Exec(`DELETE FROM overheads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete overhead: %w", err)
	}
	return requireAffected(result)
}

// ListOverheads returns a business's overhead pools.
func (s *Store) ListOverheads(businessID string) ([]catalog.Overhead, error) {
	rows, err := s.db.Query(`
		SELECT id, business_id, name, type, monthly_cost
		FROM overheads
		WHERE business_id = ?
		ORDER BY name, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query overheads: %w", err)
	}
	defer rows.Close()

	overheads := make([]catalog.Overhead, 0)
	for rows.Next() {
		var o catalog.Overhead
		if err := rows.Scan(&o.ID, &o.BusinessID, &o.Name, &o.Type, &o.MonthlyCost); err != nil {
			return nil, fmt.Errorf("scan overhead: %w", err)
		}
		overheads = append(overheads, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overheads: %w", err)
	}
	return overheads, nil
}

// SaveMenuItem inserts or updates a menu item. Sales counts are only
// mutated by ApplySale.
func (s *Store) SaveMenuItem(m *catalog.MenuItem) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO menu_items (id, business_id, name, recipe_id, sale_price, sales_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			recipe_id = excluded.recipe_id,
			sale_price = excluded.sale_price
	`, m.ID, m.BusinessID, m.Name, m.RecipeID, m.SalePrice, m.SalesCount)
	if err != nil {
		return fmt.Errorf("save menu item: %w", err)
	}
	return nil
}

// DeleteMenuItem removes a menu item.
func (s *Store) DeleteMenuItem(id string) error {
	result, err := s.db.Exec(`DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return requireAffected(result)
}

// MenuItem loads one menu item by id.
func (s *Store) MenuItem(id string) (catalog.MenuItem, error) {
	var m catalog.MenuItem
	err := s.db.QueryRow(`
		SELECT id, business_id, name, recipe_id, sale_price, sales_count
		FROM menu_items
		WHERE id = ?
	`, id).Scan(&m.ID, &m.BusinessID, &m.Name, &m.RecipeID, &m.SalePrice, &m.SalesCount)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.MenuItem{}, ErrNotFound
	}
	if err != nil {
		return catalog.MenuItem{}, fmt.Errorf("query menu item: %w", err)
	}
	return m, nil
}

// ListMenuItems returns a business's menu ordered by name.
func (s *Store) ListMenuItems(businessID string) ([]catalog.MenuItem, error) {
	rows, err := s.db.Query(`
		SELECT id, business_id, name, recipe_id, sale_price, sales_count
		FROM menu_items
		WHERE business_id = ?
		ORDER BY name, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	items := make([]catalog.MenuItem, 0)
	for rows.Next() {
		var m catalog.MenuItem
		if err := rows.Scan(&m.ID, &m.BusinessID, &m.Name, &m.RecipeID, &m.SalePrice, &m.SalesCount); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return items, nil
}
