package catalog

// Snapshot is an in-memory, single-business view of everything a cost
// computation consults. Snapshots are immutable once built, so computations
// over them are pure and safe to repeat or run in parallel.
type Snapshot struct {
	BusinessID  string
	Items       map[string]PricedItem
	Recipes     map[string]Recipe
	Conversions []UnitConversion
	Staff       []StaffMember
	Overheads   []Overhead
	Settings    BusinessSettings
	MenuItems   []MenuItem
}

// NewSnapshot builds a snapshot from entity slices, indexing items and
// recipes by id.
func NewSnapshot(businessID string, items []PricedItem, recipes []Recipe) *Snapshot {
	s := &Snapshot{
		BusinessID: businessID,
		Items:      make(map[string]PricedItem, len(items)),
		Recipes:    make(map[string]Recipe, len(recipes)),
	}
	for _, it := range items {
		s.Items[it.ID] = it
	}
	for _, r := range recipes {
		s.Recipes[r.ID] = r
	}
	return s
}

// PricedItemByID implements Catalog.
func (s *Snapshot) PricedItemByID(id string) (PricedItem, bool) {
	it, ok := s.Items[id]
	return it, ok
}

// RecipeByID implements Catalog.
func (s *Snapshot) RecipeByID(id string) (Recipe, bool) {
	r, ok := s.Recipes[id]
	return r, ok
}

// MenuItemByID returns a menu item from the snapshot.
func (s *Snapshot) MenuItemByID(id string) (MenuItem, bool) {
	for _, m := range s.MenuItems {
		if m.ID == id {
			return m, true
		}
	}
	return MenuItem{}, false
}
