// Package sales records sales against the menu: it freezes prices and
// per-serving costs at sale time, aggregates revenue and profit, and
// consumes inventory proportionally.
package sales

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/costing"
)

// ErrUnknownMenuItem rejects a sale line for a menu item that does not
// exist in the business's menu.
var ErrUnknownMenuItem = errors.New("unknown menu item")

// ErrEmptySale rejects a sale with no usable lines.
var ErrEmptySale = errors.New("sale has no lines")

// Line is one requested sale line.
type Line struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// Store is the slice of persistence the recorder needs: a read snapshot to
// compute against, and an atomic write of the finished sale.
type Store interface {
	Snapshot(businessID string) (*catalog.Snapshot, error)
	ApplySale(sale catalog.Sale, stockDeltas map[string]float64, menuCounts map[string]int) error
}

// Recorder turns sale lines into persisted sales.
type Recorder struct {
	store Store
	log   *zap.Logger
}

// NewRecorder creates a recorder over a store.
func NewRecorder(store Store, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: store, log: log.Named("sales")}
}

// RecordSale computes and persists one sale. Per line it resolves the menu
// item's recipe, computes the cost per serving at this moment and freezes
// both price and cost into the sale item. Inventory is decremented by
// (ingredient quantity / servings) x sale quantity, unit-converted;
// sub-recipe ingredients are consumed recursively in proportion to the
// batch output drawn. Over-selling is rejected, never clamped: the store
// aborts the transaction when any stock would go negative.
func (r *Recorder) RecordSale(businessID string, lines []Line) (catalog.Sale, error) {
	snap, err := r.store.Snapshot(businessID)
	if err != nil {
		return catalog.Sale{}, fmt.Errorf("load snapshot: %w", err)
	}
	engine := costing.FromSnapshot(snap, r.log)

	sale := catalog.Sale{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		CreatedAt:  time.Now().UTC(),
	}
	stockDeltas := make(map[string]float64)
	menuCounts := make(map[string]int)

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		menuItem, ok := snap.MenuItemByID(line.MenuItemID)
		if !ok {
			return catalog.Sale{}, fmt.Errorf("%w: %s", ErrUnknownMenuItem, line.MenuItemID)
		}

		var costPerServing float64
		recipe, hasRecipe := snap.RecipeByID(menuItem.RecipeID)
		if hasRecipe {
			costPerServing, err = engine.CostPerServing(recipe)
			if err != nil {
				return catalog.Sale{}, fmt.Errorf("cost menu item %s: %w", menuItem.ID, err)
			}
			r.accumulateConsumption(snap, engine, recipe, float64(line.Quantity), stockDeltas, map[string]bool{})
		} else {
			r.log.Warn("menu item has no recipe, sold at zero cost",
				zap.String("menu_item_id", menuItem.ID),
				zap.String("recipe_id", menuItem.RecipeID))
		}

		sale.Items = append(sale.Items, catalog.SaleItem{
			MenuItemID:  menuItem.ID,
			Quantity:    line.Quantity,
			PriceAtTime: menuItem.SalePrice,
			CostAtTime:  costPerServing,
		})
		sale.TotalRevenue += menuItem.SalePrice * float64(line.Quantity)
		sale.TotalCost += costPerServing * float64(line.Quantity)
		menuCounts[menuItem.ID] += line.Quantity
	}

	if len(sale.Items) == 0 {
		return catalog.Sale{}, ErrEmptySale
	}
	sale.TotalProfit = sale.TotalRevenue - sale.TotalCost

	if err := r.store.ApplySale(sale, stockDeltas, menuCounts); err != nil {
		return catalog.Sale{}, err
	}

	r.log.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.Int("lines", len(sale.Items)),
		zap.Float64("revenue", sale.TotalRevenue),
		zap.Float64("profit", sale.TotalProfit))
	return sale, nil
}

// accumulateConsumption adds the stock drawn by selling servingsSold
// servings of a recipe. Item ingredients decrement stock in the item's own
// unit; sub-recipe ingredients recurse with the fraction of the sub batch
// consumed. The visited set mirrors the engine's cycle guard so corrupt
// data cannot loop the walk; costing has already rejected true cycles.
func (r *Recorder) accumulateConsumption(snap *catalog.Snapshot, engine *costing.Engine, recipe catalog.Recipe, servingsSold float64, deltas map[string]float64, visiting map[string]bool) {
	if recipe.Servings <= 0 || visiting[recipe.ID] {
		return
	}
	visiting[recipe.ID] = true
	defer delete(visiting, recipe.ID)

	batchFraction := servingsSold / float64(recipe.Servings)
	for _, ing := range recipe.Ingredients {
		used := ing.Quantity * batchFraction

		switch ing.Kind {
		case catalog.IngredientItem:
			item, ok := snap.PricedItemByID(ing.RefID)
			if !ok {
				continue
			}
			factor, ok := engine.Units().Resolve(ing.Unit, item.Unit, item.ID)
			if !ok {
				factor = 1
				r.log.Warn("no conversion for inventory decrement, factor 1 assumed",
					zap.String("item_id", item.ID),
					zap.String("from_unit", ing.Unit),
					zap.String("to_unit", item.Unit))
			}
			deltas[item.ID] += used * factor
		case catalog.IngredientRecipe:
			sub, ok := snap.RecipeByID(ing.RefID)
			if !ok {
				continue
			}
			output := sub.BatchOutput()
			if output <= 0 {
				continue
			}
			factor, ok := engine.Units().Resolve(ing.Unit, sub.ProductionUnit, sub.ID)
			if !ok || sub.ProductionUnit == "" {
				factor = 1
			}
			// Fraction of one sub batch drawn, expressed in sub servings.
			subServings := used * factor / output * float64(sub.Servings)
			r.accumulateConsumption(snap, engine, sub, subServings, deltas, visiting)
		}
	}
}
