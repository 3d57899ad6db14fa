package catalog

import "fmt"

// ValidationError reports invalid data at the entry boundary, before it
// ever reaches the costing engine.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidatePricedItem checks item fields at data entry.
func ValidatePricedItem(it PricedItem) error {
	if it.Name == "" {
		return invalid("name", "is required")
	}
	if it.Unit == "" {
		return invalid("unit", "is required")
	}
	if it.UnitCost < 0 {
		return invalid("unit_cost", "must be greater than or equal to 0")
	}
	if it.YieldPercent < 1 || it.YieldPercent > 100 {
		return invalid("yield_percent", "must be between 1 and 100")
	}
	if it.StockQty < 0 {
		return invalid("stock_qty", "must be greater than or equal to 0")
	}
	return nil
}

// ValidateRecipe checks recipe fields and ingredient lines at data entry.
func ValidateRecipe(r Recipe) error {
	if r.Name == "" {
		return invalid("name", "is required")
	}
	if r.Servings <= 0 {
		return invalid("servings", "must be greater than 0")
	}
	if r.LabourMinutes < 0 {
		return invalid("labour_minutes", "must be greater than or equal to 0")
	}
	if r.PackagingPerServing < 0 {
		return invalid("packaging_per_serving", "must be greater than or equal to 0")
	}
	for i, ing := range r.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", i)
		if ing.Kind != IngredientItem && ing.Kind != IngredientRecipe {
			return invalid(field+".kind", "must be item or recipe")
		}
		if ing.RefID == "" {
			return invalid(field+".ref_id", "is required")
		}
		if ing.RefID == r.ID && ing.Kind == IngredientRecipe {
			return invalid(field+".ref_id", "must not reference the recipe itself")
		}
		if ing.Quantity <= 0 {
			return invalid(field+".quantity", "must be greater than 0")
		}
		if ing.YieldOverride != nil && (*ing.YieldOverride < 1 || *ing.YieldOverride > 100) {
			return invalid(field+".yield_override", "must be between 1 and 100")
		}
	}
	if c, ok := r.Labour.(CustomLabour); ok {
		if c.MonthlySalary < 0 {
			return invalid("custom_salary", "must be greater than or equal to 0")
		}
		if c.WorkingDays < 0 || c.HoursPerDay < 0 {
			return invalid("custom_schedule", "must be greater than or equal to 0")
		}
	}
	return nil
}

// ValidateConversion checks a custom unit conversion at data entry.
func ValidateConversion(c UnitConversion) error {
	if c.FromUnit == "" || c.ToUnit == "" {
		return invalid("units", "from_unit and to_unit are required")
	}
	if c.FromUnit == c.ToUnit {
		return invalid("units", "from_unit and to_unit must differ")
	}
	if c.Factor <= 0 {
		return invalid("factor", "must be greater than 0")
	}
	return nil
}
