package costing

import "github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"

// OverheadPerDish allocates the monthly overhead pools down to a single
// dish: the variable pool over dishes produced, the fixed pool over dishes
// sold. A zero volume zeroes the corresponding share.
func OverheadPerDish(overheads []catalog.Overhead, settings catalog.BusinessSettings) float64 {
	var fixed, variable float64
	for _, o := range overheads {
		switch o.Type {
		case catalog.OverheadFixed:
			fixed += o.MonthlyCost
		case catalog.OverheadVariable:
			variable += o.MonthlyCost
		}
	}

	var perDish float64
	if settings.DishesProducedPerMonth > 0 {
		perDish += variable / settings.DishesProducedPerMonth
	}
	if settings.DishesSoldPerMonth > 0 {
		perDish += fixed / settings.DishesSoldPerMonth
	}
	return perDish
}

// AllocateOverhead scales the per-dish overhead up to one full batch of the
// recipe. It is added exactly once, on the batch total.
func AllocateOverhead(overheads []catalog.Overhead, settings catalog.BusinessSettings, r catalog.Recipe) float64 {
	return OverheadPerDish(overheads, settings) * float64(r.Servings)
}
