package costing

import "github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"

// Classification is a menu engineering quadrant.
type Classification string

const (
	Star      Classification = "star"      // high profit, high popularity
	Plowhorse Classification = "plowhorse" // low profit, high popularity
	Puzzle    Classification = "puzzle"    // high profit, low popularity
	Dog       Classification = "dog"       // low profit, low popularity
)

// ClassifyMenuItems places every menu item in a quadrant by comparing its
// profit per serving and sales count against the menu-wide averages. Values
// on the average count as meeting it. A cyclic recipe aborts the whole
// classification, since the averages would be wrong.
func (e *Engine) ClassifyMenuItems(items []catalog.MenuItem) (map[string]Classification, error) {
	result := make(map[string]Classification, len(items))
	if len(items) == 0 {
		return result, nil
	}

	profits := make([]float64, len(items))
	var profitSum, popularitySum float64
	for i, m := range items {
		var cps float64
		if recipe, ok := e.catalog.RecipeByID(m.RecipeID); ok {
			var err error
			cps, err = e.CostPerServing(recipe)
			if err != nil {
				return nil, err
			}
		}
		profits[i] = m.SalePrice - cps
		profitSum += profits[i]
		popularitySum += float64(m.SalesCount)
	}

	avgProfit := profitSum / float64(len(items))
	avgPopularity := popularitySum / float64(len(items))

	for i, m := range items {
		result[m.ID] = classify(profits[i] >= avgProfit, float64(m.SalesCount) >= avgPopularity)
	}
	return result, nil
}

func classify(profitable, popular bool) Classification {
	switch {
	case profitable && popular:
		return Star
	case popular:
		return Plowhorse
	case profitable:
		return Puzzle
	default:
		return Dog
	}
}
