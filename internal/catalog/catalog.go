package catalog

import "time"

// Business is the tenant boundary: every entity belongs to exactly one
// business, and the engine operates within one business's data at a time.
type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemCategory classifies a priced item for catalog browsing.
type ItemCategory string

const (
	CategoryProduce   ItemCategory = "produce"
	CategoryMeat      ItemCategory = "meat"
	CategoryDairy     ItemCategory = "dairy"
	CategoryPantry    ItemCategory = "pantry"
	CategoryBakery    ItemCategory = "bakery"
	CategoryBeverages ItemCategory = "beverages"
	CategorySeafood   ItemCategory = "seafood"
)

// PricedItem is a purchasable inventory item with a unit cost and a yield
// percentage (usable fraction after trim/prep loss, 1-100).
type PricedItem struct {
	ID           string       `json:"id"`
	BusinessID   string       `json:"business_id"`
	Name         string       `json:"name"`
	Category     ItemCategory `json:"category"`
	Unit         string       `json:"unit"`
	UnitCost     float64      `json:"unit_cost"`
	YieldPercent float64      `json:"yield_percent"`
	StockQty     float64      `json:"stock_qty"`
	MinThreshold float64      `json:"min_threshold"`
}

// IngredientKind discriminates the two ingredient variants.
type IngredientKind string

const (
	IngredientItem   IngredientKind = "item"
	IngredientRecipe IngredientKind = "recipe"
)

// Ingredient is one line of a recipe. RefID points at a PricedItem when
// Kind is "item" and at another Recipe when Kind is "recipe". Quantity is
// the amount consumed by one full batch of the parent recipe.
type Ingredient struct {
	Kind          IngredientKind `json:"kind"`
	RefID         string         `json:"ref_id"`
	Quantity      float64        `json:"quantity"`
	Unit          string         `json:"unit"`
	YieldOverride *float64       `json:"yield_override,omitempty"`
}

// LabourMethod names a labour costing strategy.
type LabourMethod string

const (
	LabourBlended       LabourMethod = "blended"
	LabourCustom        LabourMethod = "custom"
	LabourStaffAssigned LabourMethod = "staff"
)

// LabourCosting is the tagged union of labour costing strategies. Each
// variant carries exactly the data its rate calculation needs.
type LabourCosting interface {
	Method() LabourMethod
}

// BlendedLabour averages the whole payroll over the business working hours.
type BlendedLabour struct{}

func (BlendedLabour) Method() LabourMethod { return LabourBlended }

// CustomLabour uses a manually entered salary and schedule.
type CustomLabour struct {
	MonthlySalary float64
	WorkingDays   float64
	HoursPerDay   float64
}

func (CustomLabour) Method() LabourMethod { return LabourCustom }

// StaffAssignedLabour uses one specific staff member's salary over the
// business working hours.
type StaffAssignedLabour struct {
	StaffID string
}

func (StaffAssignedLabour) Method() LabourMethod { return LabourStaffAssigned }

// CostPoint is one entry of a recipe's append-only cost history.
type CostPoint struct {
	Date time.Time `json:"date"`
	Cost float64   `json:"cost"`
}

// Recipe is an ordered list of ingredients plus the batch parameters the
// costing engine needs. Servings is the batch output in servings; recipes
// that describe a bulk production batch (a sauce, a filling) set
// ProductionYield and ProductionUnit instead, and parents consume them in
// that unit.
type Recipe struct {
	ID                  string        `json:"id"`
	BusinessID          string        `json:"business_id"`
	Name                string        `json:"name"`
	Category            string        `json:"category"`
	Ingredients         []Ingredient  `json:"ingredients"`
	Servings            int           `json:"servings"`
	ProductionYield     float64       `json:"production_yield,omitempty"`
	ProductionUnit      string        `json:"production_unit,omitempty"`
	LabourMinutes       float64       `json:"labour_minutes"`
	PackagingPerServing float64       `json:"packaging_per_serving"`
	Labour              LabourCosting `json:"-"`
	TargetPrice         float64       `json:"target_price"`
}

// BatchOutput is the divisor used to derive a per-unit cost when this
// recipe is consumed as a sub-recipe: the production yield when one is
// declared, otherwise the serving count.
func (r Recipe) BatchOutput() float64 {
	if r.ProductionYield > 0 {
		return r.ProductionYield
	}
	return float64(r.Servings)
}

// UnitConversion converts a quantity between two units of measure:
// quantity in ToUnit = quantity in FromUnit x Factor. A non-empty ItemID
// restricts the conversion to one item; item-specific conversions win over
// generic ones.
type UnitConversion struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"business_id"`
	FromUnit   string  `json:"from_unit"`
	ToUnit     string  `json:"to_unit"`
	Factor     float64 `json:"factor"`
	ItemID     string  `json:"item_id,omitempty"`
}

// StaffMember is a payroll record consumed by the labour resolver.
type StaffMember struct {
	ID            string  `json:"id"`
	BusinessID    string  `json:"business_id"`
	Name          string  `json:"name"`
	MonthlySalary float64 `json:"monthly_salary"`
}

// OverheadType separates overhead pools by allocation base.
type OverheadType string

const (
	OverheadFixed    OverheadType = "fixed"
	OverheadVariable OverheadType = "variable"
)

// Overhead is a monthly cost pool (rent, electricity, ...).
type Overhead struct {
	ID          string       `json:"id"`
	BusinessID  string       `json:"business_id"`
	Name        string       `json:"name"`
	Type        OverheadType `json:"type"`
	MonthlyCost float64      `json:"monthly_cost"`
}

// BusinessSettings is the explicit value object of business-wide figures
// that labour and overhead calculations depend on. It is always passed as
// a parameter, never read from ambient state.
type BusinessSettings struct {
	WorkingDaysPerMonth    float64 `json:"working_days_per_month"`
	HoursPerDay            float64 `json:"hours_per_day"`
	DishesProducedPerMonth float64 `json:"dishes_produced_per_month"`
	DishesSoldPerMonth     float64 `json:"dishes_sold_per_month"`
}

// MenuItem ties a recipe to a sale price and tracks cumulative sales.
type MenuItem struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"business_id"`
	Name       string  `json:"name"`
	RecipeID   string  `json:"recipe_id"`
	SalePrice  float64 `json:"sale_price"`
	SalesCount int     `json:"sales_count"`
}

// SaleItem freezes price and cost per serving at the moment of sale so the
// sale record stays accurate when costs change later.
type SaleItem struct {
	MenuItemID  string  `json:"menu_item_id"`
	Quantity    int     `json:"quantity"`
	PriceAtTime float64 `json:"price_at_time"`
	CostAtTime  float64 `json:"cost_at_time"`
}

// Sale is one recorded sale with its aggregated totals.
type Sale struct {
	ID           string     `json:"id"`
	BusinessID   string     `json:"business_id"`
	CreatedAt    time.Time  `json:"created_at"`
	Items        []SaleItem `json:"items"`
	TotalRevenue float64    `json:"total_revenue"`
	TotalCost    float64    `json:"total_cost"`
	TotalProfit  float64    `json:"total_profit"`
}

// Catalog is the read-only view the costing engine consults.
type Catalog interface {
	PricedItemByID(id string) (PricedItem, bool)
	RecipeByID(id string) (Recipe, bool)
}
