package costing

import (
	"strings"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

type unitPair struct {
	From string
	To   string
}

// ConversionTable resolves factors between units of measure. It holds the
// built-in mass/volume/count pairs plus business-defined conversions, some
// restricted to a single item. Conversions are stored bidirectionally: the
// inverse of every added pair is derived at insertion time, so a missing
// stored direction cannot silently mis-cost an ingredient.
type ConversionTable struct {
	generic map[unitPair]float64
	byItem  map[string]map[unitPair]float64
}

// NewConversionTable returns a table preloaded with the standard pairs:
// kg-g, l-ml and dozen-unit.
func NewConversionTable() *ConversionTable {
	t := &ConversionTable{
		generic: make(map[unitPair]float64),
		byItem:  make(map[string]map[unitPair]float64),
	}
	t.Add("kg", "g", 1000, "")
	t.Add("l", "ml", 1000, "")
	t.Add("dozen", "unit", 12, "")
	return t
}

// NewConversionTableFrom preloads the built-ins and then adds every custom
// conversion from the slice.
func NewConversionTableFrom(conversions []catalog.UnitConversion) *ConversionTable {
	t := NewConversionTable()
	for _, c := range conversions {
		t.Add(c.FromUnit, c.ToUnit, c.Factor, c.ItemID)
	}
	return t
}

// Add registers a conversion and its derived inverse. An explicitly added
// direction always wins over a previously derived inverse. Zero and
// negative factors are ignored.
func (t *ConversionTable) Add(fromUnit, toUnit string, factor float64, itemID string) {
	from, to := normalizeUnit(fromUnit), normalizeUnit(toUnit)
	if from == "" || to == "" || from == to || factor <= 0 {
		return
	}

	dest := t.generic
	if itemID != "" {
		if t.byItem[itemID] == nil {
			t.byItem[itemID] = make(map[unitPair]float64)
		}
		dest = t.byItem[itemID]
	}

	dest[unitPair{from, to}] = factor
	inverse := unitPair{to, from}
	if _, exists := dest[inverse]; !exists {
		dest[inverse] = 1 / factor
	}
}

// Resolve returns the factor converting a quantity from fromUnit to toUnit.
// Identical units resolve to 1. An item-specific conversion for itemID takes
// precedence over a generic one; the built-ins are generic. The second
// return is false when no conversion is known.
func (t *ConversionTable) Resolve(fromUnit, toUnit, itemID string) (float64, bool) {
	from, to := normalizeUnit(fromUnit), normalizeUnit(toUnit)
	if from == to {
		return 1, true
	}

	pair := unitPair{from, to}
	if itemID != "" {
		if factor, ok := t.byItem[itemID][pair]; ok {
			return factor, true
		}
	}
	if factor, ok := t.generic[pair]; ok {
		return factor, true
	}
	return 0, false
}

func normalizeUnit(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}
