package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

// SaveRecipe inserts or replaces a recipe and its ingredient list in one
// transaction.
func (s *Store) SaveRecipe(r *catalog.Recipe) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	method, salary, days, hours, staffID := labourColumns(r.Labour)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save recipe: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO recipes (
			id, business_id, name, category, servings,
			production_yield, production_unit, labour_minutes, packaging_per_serving,
			labour_method, custom_salary, custom_working_days, custom_hours_per_day, staff_id,
			target_price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			servings = excluded.servings,
			production_yield = excluded.production_yield,
			production_unit = excluded.production_unit,
			labour_minutes = excluded.labour_minutes,
			packaging_per_serving = excluded.packaging_per_serving,
			labour_method = excluded.labour_method,
			custom_salary = excluded.custom_salary,
			custom_working_days = excluded.custom_working_days,
			custom_hours_per_day = excluded.custom_hours_per_day,
			staff_id = excluded.staff_id,
			target_price = excluded.target_price,
			updated_at = CURRENT_TIMESTAMP
	`, r.ID, r.BusinessID, r.Name, r.Category, r.Servings,
		r.ProductionYield, r.ProductionUnit, r.LabourMinutes, r.PackagingPerServing,
		method, salary, days, hours, staffID,
		r.TargetPrice)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert recipe: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, r.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear recipe ingredients: %w", err)
	}

	for i, ing := range r.Ingredients {
		var override sql.NullFloat64
		if ing.YieldOverride != nil {
			override = sql.NullFloat64{Float64: *ing.YieldOverride, Valid: true}
		}
		_, err := tx.Exec(`
			INSERT INTO recipe_ingredients (recipe_id, position, kind, ref_id, quantity, unit, yield_override)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.ID, i, ing.Kind, ing.RefID, ing.Quantity, ing.Unit, override)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save recipe: %w", err)
	}
	return nil
}

// DeleteRecipe removes a recipe unless another recipe consumes it as a
// sub-recipe or a menu item points at it.
func (s *Store) DeleteRecipe(id string) error {
	var referenced bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM recipe_ingredients WHERE kind = 'recipe' AND ref_id = ?
			UNION SELECT 1 FROM menu_items WHERE recipe_id = ?
			LIMIT 1
		)
	`, id, id).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("check recipe references: %w", err)
	}
	if referenced {
		return ErrRecipeReferenced
	}

	result, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return requireAffected(result)
}

// Recipe loads one recipe with its ingredient list.
func (s *Store) Recipe(id string) (catalog.Recipe, error) {
	recipes, err := s.loadRecipes(`WHERE id = ?`, id)
	if err != nil {
		return catalog.Recipe{}, err
	}
	if len(recipes) == 0 {
		return catalog.Recipe{}, ErrNotFound
	}
	return recipes[0], nil
}

// ListRecipes returns a business's recipes ordered by name.
func (s *Store) ListRecipes(businessID string) ([]catalog.Recipe, error) {
	return s.loadRecipes(`WHERE business_id = ? ORDER BY name, id`, businessID)
}

func (s *Store) loadRecipes(where string, args ...any) ([]catalog.Recipe, error) {
	rows, err := s.db.Query(`
		SELECT
			id, business_id, name, category, servings,
			production_yield, production_unit, labour_minutes, packaging_per_serving,
			labour_method, custom_salary, custom_working_days, custom_hours_per_day, staff_id,
			target_price
		FROM recipes `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]catalog.Recipe, 0)
	for rows.Next() {
		var r catalog.Recipe
		var method, staffID string
		var salary, days, hours float64
		if err := rows.Scan(
			&r.ID, &r.BusinessID, &r.Name, &r.Category, &r.Servings,
			&r.ProductionYield, &r.ProductionUnit, &r.LabourMinutes, &r.PackagingPerServing,
			&method, &salary, &days, &hours, &staffID,
			&r.TargetPrice,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		r.Labour = labourFromColumns(method, salary, days, hours, staffID)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	for i := range recipes {
		if recipes[i].Ingredients, err = s.loadIngredients(recipes[i].ID); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

func (s *Store) loadIngredients(recipeID string) ([]catalog.Ingredient, error) {
	rows, err := s.db.Query(`
		SELECT kind, ref_id, quantity, unit, yield_override
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]catalog.Ingredient, 0)
	for rows.Next() {
		var ing catalog.Ingredient
		var override sql.NullFloat64
		if err := rows.Scan(&ing.Kind, &ing.RefID, &ing.Quantity, &ing.Unit, &override); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		if override.Valid {
			v := override.Float64
			ing.YieldOverride = &v
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe ingredients: %w", err)
	}
	return ingredients, nil
}

func labourColumns(labour catalog.LabourCosting) (method string, salary, days, hours float64, staffID string) {
	switch l := labour.(type) {
	case catalog.CustomLabour:
		return string(catalog.LabourCustom), l.MonthlySalary, l.WorkingDays, l.HoursPerDay, ""
	case catalog.StaffAssignedLabour:
		return string(catalog.LabourStaffAssigned), 0, 0, 0, l.StaffID
	default:
		return string(catalog.LabourBlended), 0, 0, 0, ""
	}
}

func labourFromColumns(method string, salary, days, hours float64, staffID string) catalog.LabourCosting {
	switch catalog.LabourMethod(method) {
	case catalog.LabourCustom:
		return catalog.CustomLabour{MonthlySalary: salary, WorkingDays: days, HoursPerDay: hours}
	case catalog.LabourStaffAssigned:
		return catalog.StaffAssignedLabour{StaffID: staffID}
	default:
		return catalog.BlendedLabour{}
	}
}
