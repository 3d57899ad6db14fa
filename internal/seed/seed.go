// Package seed provisions the default business and a small demo catalog so
// a fresh install can compute costs immediately.
package seed

import (
	"fmt"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/store"
)

// DefaultBusinessID is the single-tenant business created at startup.
const DefaultBusinessID = "default"

const demoItemName = "Tomatoes"

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: the default business
// and settings always exist, and the demo catalog is inserted only when the
// business has no priced items at all.
func Run(s *store.Store, businessName string) (Stats, error) {
	stats := Stats{}

	if err := s.EnsureBusiness(DefaultBusinessID, businessName); err != nil {
		return Stats{}, err
	}

	if err := ensureSettings(s); err != nil {
		return Stats{}, err
	}

	items, err := s.ListPricedItems(DefaultBusinessID)
	if err != nil {
		return Stats{}, err
	}
	if len(items) > 0 {
		return stats, nil
	}

	if err := seedDemoCatalog(s, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func ensureSettings(s *store.Store) error {
	settings, err := s.Settings(DefaultBusinessID)
	if err != nil {
		return fmt.Errorf("load default settings: %w", err)
	}
	if settings != (catalog.BusinessSettings{}) {
		return nil
	}

	return s.UpdateSettings(DefaultBusinessID, catalog.BusinessSettings{
		WorkingDaysPerMonth: 22,
		HoursPerDay:         8,
	})
}

func seedDemoCatalog(s *store.Store, stats *Stats) error {
	tomatoes := catalog.PricedItem{
		BusinessID:   DefaultBusinessID,
		Name:         demoItemName,
		Category:     catalog.CategoryProduce,
		Unit:         "kg",
		UnitCost:     2.5,
		YieldPercent: 90,
		StockQty:     50,
		MinThreshold: 5,
	}
	if err := s.CreatePricedItem(&tomatoes); err != nil {
		return fmt.Errorf("seed demo item: %w", err)
	}
	stats.Inserts++

	crate := catalog.UnitConversion{
		BusinessID: DefaultBusinessID,
		FromUnit:   "crate",
		ToUnit:     "kg",
		Factor:     10,
		ItemID:     tomatoes.ID,
	}
	if err := s.AddConversion(&crate); err != nil {
		return fmt.Errorf("seed demo conversion: %w", err)
	}
	stats.Inserts++

	sauce := catalog.Recipe{
		BusinessID:      DefaultBusinessID,
		Name:            "Tomato Sauce",
		Category:        "bases",
		Servings:        1,
		ProductionYield: 10,
		ProductionUnit:  "l",
		LabourMinutes:   40,
		Labour:          catalog.BlendedLabour{},
		Ingredients: []catalog.Ingredient{
			{Kind: catalog.IngredientItem, RefID: tomatoes.ID, Quantity: 12, Unit: "kg"},
		},
	}
	if err := s.SaveRecipe(&sauce); err != nil {
		return fmt.Errorf("seed demo sauce: %w", err)
	}
	stats.Inserts++

	pasta := catalog.Recipe{
		BusinessID:          DefaultBusinessID,
		Name:                "Pasta al Pomodoro",
		Category:            "mains",
		Servings:            4,
		LabourMinutes:       20,
		PackagingPerServing: 0.15,
		Labour:              catalog.BlendedLabour{},
		TargetPrice:         11,
		Ingredients: []catalog.Ingredient{
			{Kind: catalog.IngredientRecipe, RefID: sauce.ID, Quantity: 1, Unit: "l"},
		},
	}
	if err := s.SaveRecipe(&pasta); err != nil {
		return fmt.Errorf("seed demo recipe: %w", err)
	}
	stats.Inserts++

	dish := catalog.MenuItem{
		BusinessID: DefaultBusinessID,
		Name:       "Pasta al Pomodoro",
		RecipeID:   pasta.ID,
		SalePrice:  11,
	}
	if err := s.SaveMenuItem(&dish); err != nil {
		return fmt.Errorf("seed demo menu item: %w", err)
	}
	stats.Inserts++

	return nil
}
