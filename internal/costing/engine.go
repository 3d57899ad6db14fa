package costing

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

// WarningCode identifies a data-quality problem found during a cost
// computation. Warnings degrade the result instead of aborting it; the
// caller decides how loudly to surface them.
type WarningCode string

const (
	WarnMissingItem    WarningCode = "missing_item"
	WarnMissingRecipe  WarningCode = "missing_recipe"
	WarnMissingStaff   WarningCode = "missing_staff"
	WarnUnitConversion WarningCode = "unit_conversion_not_found"
)

// Warning flags one degraded line of a breakdown.
type Warning struct {
	Code     WarningCode `json:"code"`
	RecipeID string      `json:"recipe_id"`
	Ref      string      `json:"ref,omitempty"`
	Detail   string      `json:"detail"`
}

// Breakdown is the complete cost structure of one recipe batch. It is
// always fully populated, even when warnings degraded individual lines.
type Breakdown struct {
	RawMaterialCost float64   `json:"raw_material_cost"`
	LabourCost      float64   `json:"labour_cost"`
	PackagingCost   float64   `json:"packaging_cost"`
	OverheadCost    float64   `json:"overhead_cost"`
	TotalCost       float64   `json:"total_cost"`
	CostPerServing  float64   `json:"cost_per_serving"`
	Warnings        []Warning `json:"warnings,omitempty"`
}

// CyclicRecipeError reports a sub-recipe chain that loops back onto an
// ancestor. The cost of such a recipe is undefined and the computation is
// aborted.
type CyclicRecipeError struct {
	Path []string
}

func (e *CyclicRecipeError) Error() string {
	return fmt.Sprintf("cyclic recipe reference: %s", strings.Join(e.Path, " -> "))
}

// Engine computes recipe cost breakdowns over an immutable snapshot of
// catalog data. It holds only shared read state, so a single engine may be
// used for any number of independent computations.
type Engine struct {
	catalog   catalog.Catalog
	units     *ConversionTable
	staff     []catalog.StaffMember
	overheads []catalog.Overhead
	settings  catalog.BusinessSettings
	log       *zap.Logger
}

// NewEngine assembles an engine from its read dependencies.
func NewEngine(cat catalog.Catalog, units *ConversionTable, staff []catalog.StaffMember, overheads []catalog.Overhead, settings catalog.BusinessSettings, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if units == nil {
		units = NewConversionTable()
	}
	return &Engine{
		catalog:   cat,
		units:     units,
		staff:     staff,
		overheads: overheads,
		settings:  settings,
		log:       log.Named("costing"),
	}
}

// FromSnapshot builds an engine directly over a loaded business snapshot.
func FromSnapshot(snap *catalog.Snapshot, log *zap.Logger) *Engine {
	return NewEngine(snap, NewConversionTableFrom(snap.Conversions), snap.Staff, snap.Overheads, snap.Settings, log)
}

// Units exposes the engine's conversion table for callers that need a raw
// factor lookup.
func (e *Engine) Units() *ConversionTable { return e.units }

// CostBreakdown computes the full cost structure of one recipe batch:
// yield-adjusted raw materials with sub-recipes resolved recursively,
// labour, packaging and overhead allocation. The only hard failure is a
// cyclic sub-recipe reference.
func (e *Engine) CostBreakdown(r catalog.Recipe) (Breakdown, error) {
	return e.breakdown(r, map[string]bool{}, nil)
}

// Cost is a convenience wrapper returning just the batch total.
func (e *Engine) Cost(r catalog.Recipe) (float64, error) {
	bd, err := e.CostBreakdown(r)
	if err != nil {
		return 0, err
	}
	return bd.TotalCost, nil
}

// CostPerServing returns the per-serving figure of a full breakdown.
func (e *Engine) CostPerServing(r catalog.Recipe) (float64, error) {
	bd, err := e.CostBreakdown(r)
	if err != nil {
		return 0, err
	}
	return bd.CostPerServing, nil
}

func (e *Engine) breakdown(r catalog.Recipe, visiting map[string]bool, path []string) (Breakdown, error) {
	if r.ID != "" {
		visiting[r.ID] = true
		defer delete(visiting, r.ID)
	}
	path = append(path, recipeLabel(r))

	bd := Breakdown{}
	for _, ing := range r.Ingredients {
		switch ing.Kind {
		case catalog.IngredientItem:
			cost, warns := e.itemLineCost(r, ing)
			bd.RawMaterialCost += cost
			bd.Warnings = append(bd.Warnings, warns...)
		case catalog.IngredientRecipe:
			cost, warns, err := e.subRecipeLineCost(r, ing, visiting, path)
			if err != nil {
				return Breakdown{}, err
			}
			bd.RawMaterialCost += cost
			bd.Warnings = append(bd.Warnings, warns...)
		}
	}

	bd.LabourCost = LabourCost(r, e.staff, e.settings)
	if assigned, ok := r.Labour.(catalog.StaffAssignedLabour); ok {
		if _, found := findStaff(e.staff, assigned.StaffID); !found {
			bd.Warnings = append(bd.Warnings, e.warn(Warning{
				Code:     WarnMissingStaff,
				RecipeID: r.ID,
				Ref:      assigned.StaffID,
				Detail:   "assigned staff member not found, labour cost is 0",
			}))
		}
	}

	bd.PackagingCost = r.PackagingPerServing * float64(r.Servings)
	bd.OverheadCost = AllocateOverhead(e.overheads, e.settings, r)
	bd.TotalCost = bd.RawMaterialCost + bd.LabourCost + bd.PackagingCost + bd.OverheadCost
	if r.Servings > 0 {
		bd.CostPerServing = bd.TotalCost / float64(r.Servings)
	}
	return bd, nil
}

// itemLineCost prices one item ingredient: yield-adjusted true unit cost
// times the quantity, converted into the item's purchase unit. A stale item
// reference contributes 0; an unresolved conversion degrades to factor 1.
func (e *Engine) itemLineCost(r catalog.Recipe, ing catalog.Ingredient) (float64, []Warning) {
	item, ok := e.catalog.PricedItemByID(ing.RefID)
	if !ok {
		return 0, []Warning{e.warn(Warning{
			Code:     WarnMissingItem,
			RecipeID: r.ID,
			Ref:      ing.RefID,
			Detail:   "ingredient references an unknown priced item, line skipped",
		})}
	}

	var warns []Warning
	factor, ok := e.units.Resolve(ing.Unit, item.Unit, item.ID)
	if !ok {
		factor = 1
		warns = append(warns, e.warn(Warning{
			Code:     WarnUnitConversion,
			RecipeID: r.ID,
			Ref:      item.ID,
			Detail:   fmt.Sprintf("no conversion from %q to %q, factor 1 assumed", ing.Unit, item.Unit),
		}))
	}

	return trueUnitCost(item.UnitCost, effectiveYield(item, ing)) * ing.Quantity * factor, warns
}

// subRecipeLineCost prices one sub-recipe ingredient by recursing into the
// referenced recipe and deriving its per-unit cost from the batch output.
func (e *Engine) subRecipeLineCost(r catalog.Recipe, ing catalog.Ingredient, visiting map[string]bool, path []string) (float64, []Warning, error) {
	sub, ok := e.catalog.RecipeByID(ing.RefID)
	if !ok {
		return 0, []Warning{e.warn(Warning{
			Code:     WarnMissingRecipe,
			RecipeID: r.ID,
			Ref:      ing.RefID,
			Detail:   "ingredient references an unknown recipe, line skipped",
		})}, nil
	}

	if visiting[sub.ID] {
		return 0, nil, &CyclicRecipeError{Path: append(path, recipeLabel(sub))}
	}

	subBD, err := e.breakdown(sub, visiting, path)
	if err != nil {
		return 0, nil, err
	}
	warns := subBD.Warnings

	output := sub.BatchOutput()
	if output <= 0 {
		return 0, warns, nil
	}

	factor := 1.0
	if sub.ProductionUnit != "" {
		var ok bool
		factor, ok = e.units.Resolve(ing.Unit, sub.ProductionUnit, sub.ID)
		if !ok {
			factor = 1
			warns = append(warns, e.warn(Warning{
				Code:     WarnUnitConversion,
				RecipeID: r.ID,
				Ref:      sub.ID,
				Detail:   fmt.Sprintf("no conversion from %q to %q, factor 1 assumed", ing.Unit, sub.ProductionUnit),
			}))
		}
	}

	return subBD.TotalCost / output * ing.Quantity * factor, warns, nil
}

func (e *Engine) warn(w Warning) Warning {
	e.log.Warn("degraded cost line",
		zap.String("code", string(w.Code)),
		zap.String("recipe_id", w.RecipeID),
		zap.String("ref", w.Ref),
		zap.String("detail", w.Detail))
	return w
}

// trueUnitCost inflates the purchase cost by prep loss: at 50% yield only
// half the purchased quantity is usable, doubling the effective cost.
func trueUnitCost(unitCost, yieldPercent float64) float64 {
	if yieldPercent <= 0 {
		yieldPercent = 100
	}
	return unitCost / (yieldPercent / 100)
}

func effectiveYield(item catalog.PricedItem, ing catalog.Ingredient) float64 {
	if ing.YieldOverride != nil {
		return *ing.YieldOverride
	}
	if item.YieldPercent > 0 {
		return item.YieldPercent
	}
	return 100
}

func recipeLabel(r catalog.Recipe) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}
