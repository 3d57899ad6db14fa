package main

import (
	"math"
	"net/http"
	"testing"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/seed"
)

// seedMenu builds one sellable dish: 2kg of a 2.0/kg item across 4
// servings, so cost per serving is 1.
func seedMenu(t *testing.T, srv *server, stock float64, salePrice float64, salesCount int) (catalog.PricedItem, catalog.MenuItem) {
	t.Helper()

	item := seedServerItem(t, srv, "Tomatoes", "kg", 2, stock)
	recipe := catalog.Recipe{
		BusinessID: seed.DefaultBusinessID,
		Name:       "Tomato Soup",
		Servings:   4,
		Labour:     catalog.BlendedLabour{},
		Ingredients: []catalog.Ingredient{
			{Kind: catalog.IngredientItem, RefID: item.ID, Quantity: 2, Unit: "kg"},
		},
	}
	if err := srv.store.SaveRecipe(&recipe); err != nil {
		t.Fatalf("save recipe: %v", err)
	}
	menuItem := catalog.MenuItem{
		BusinessID: seed.DefaultBusinessID,
		Name:       recipe.Name,
		RecipeID:   recipe.ID,
		SalePrice:  salePrice,
		SalesCount: salesCount,
	}
	if err := srv.store.SaveMenuItem(&menuItem); err != nil {
		t.Fatalf("save menu item: %v", err)
	}
	return item, menuItem
}

func TestHandleSaveMenuItemRejectsUnknownRecipe(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv.handleSaveMenuItem, http.MethodPost, "/api/menu", map[string]any{
		"name":       "Ghost Dish",
		"recipe_id":  "missing",
		"sale_price": 9.5,
	}, nil)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleMenuEngineeringClassifiesQuadrants(t *testing.T) {
	srv := newTestServer(t)
	_, soup := seedMenu(t, srv, 30, 11, 10)

	// Same recipe, lower margin, barely selling.
	side := catalog.MenuItem{
		BusinessID: seed.DefaultBusinessID,
		Name:       "Soup Cup",
		RecipeID:   soup.RecipeID,
		SalePrice:  3,
		SalesCount: 2,
	}
	if err := srv.store.SaveMenuItem(&side); err != nil {
		t.Fatalf("save menu item: %v", err)
	}

	rr := doRequest(t, srv.handleMenuEngineering, http.MethodGet, "/api/menu/engineering", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[menuEngineeringResponse](t, rr)

	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Items))
	}
	// Cost per serving is 1, so profits are 10 and 2: averages 6 and 6.
	if math.Abs(resp.AvgProfit-6) > 1e-9 || math.Abs(resp.AvgPopularity-6) > 1e-9 {
		t.Fatalf("unexpected averages: profit %v popularity %v", resp.AvgProfit, resp.AvgPopularity)
	}

	byID := make(map[string]menuEngineeringRow, len(resp.Items))
	for _, row := range resp.Items {
		byID[row.MenuItemID] = row
	}
	if got := byID[soup.ID].Classification; got != "star" {
		t.Fatalf("expected soup to classify as star, got %q", got)
	}
	if got := byID[side.ID].Classification; got != "dog" {
		t.Fatalf("expected side to classify as dog, got %q", got)
	}
	if math.Abs(byID[soup.ID].ProfitPerServing-10) > 1e-9 {
		t.Fatalf("unexpected soup profit: %v", byID[soup.ID].ProfitPerServing)
	}
}

func TestHandleRecordSaleFreezesCostAndDecrementsStock(t *testing.T) {
	srv := newTestServer(t)
	item, menuItem := seedMenu(t, srv, 10, 5, 0)

	rr := doRequest(t, srv.handleRecordSale, http.MethodPost, "/api/sales", map[string]any{
		"lines": []map[string]any{
			{"menu_item_id": menuItem.ID, "quantity": 2},
		},
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	sale := decodeBody[catalog.Sale](t, rr)
	if len(sale.Items) != 1 {
		t.Fatalf("expected 1 sale item, got %d", len(sale.Items))
	}
	if sale.Items[0].PriceAtTime != 5 || sale.Items[0].CostAtTime != 1 {
		t.Fatalf("frozen price/cost wrong: %+v", sale.Items[0])
	}
	if sale.TotalRevenue != 10 || sale.TotalCost != 2 || sale.TotalProfit != 8 {
		t.Fatalf("unexpected totals: %+v", sale)
	}

	// 0.5kg per serving, two servings sold.
	stored, err := srv.store.PricedItem(item.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if math.Abs(stored.StockQty-9) > 1e-9 {
		t.Fatalf("stock = %v, want 9", stored.StockQty)
	}

	menuStored, err := srv.store.MenuItem(menuItem.ID)
	if err != nil {
		t.Fatalf("reload menu item: %v", err)
	}
	if menuStored.SalesCount != 2 {
		t.Fatalf("sales count = %d, want 2", menuStored.SalesCount)
	}
}

func TestHandleRecordSaleOversellConflict(t *testing.T) {
	srv := newTestServer(t)
	item, menuItem := seedMenu(t, srv, 0.4, 5, 0)

	rr := doRequest(t, srv.handleRecordSale, http.MethodPost, "/api/sales", map[string]any{
		"lines": []map[string]any{
			{"menu_item_id": menuItem.ID, "quantity": 1},
		},
	}, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rr.Code, rr.Body.String())
	}

	stored, err := srv.store.PricedItem(item.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if math.Abs(stored.StockQty-0.4) > 1e-9 {
		t.Fatalf("rejected sale must not touch stock, got %v", stored.StockQty)
	}
	list, err := srv.store.ListSales(seed.DefaultBusinessID)
	if err != nil {
		t.Fatalf("list sales: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("rejected sale must not persist, got %d sales", len(list))
	}
}

func TestHandleRecordSaleBadRequests(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv.handleRecordSale, http.MethodPost, "/api/sales", map[string]any{
		"lines": []map[string]any{
			{"menu_item_id": "missing", "quantity": 1},
		},
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown menu item, got %d", rr.Code)
	}

	rr = doRequest(t, srv.handleRecordSale, http.MethodPost, "/api/sales", map[string]any{
		"lines": []map[string]any{},
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty sale, got %d", rr.Code)
	}
}
