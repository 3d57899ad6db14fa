package main

import (
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/costing"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/seed"
)

func seedServerItem(t *testing.T, srv *server, name, unit string, unitCost, stock float64) catalog.PricedItem {
	t.Helper()
	item := catalog.PricedItem{
		BusinessID:   seed.DefaultBusinessID,
		Name:         name,
		Category:     catalog.CategoryPantry,
		Unit:         unit,
		UnitCost:     unitCost,
		YieldPercent: 100,
		StockQty:     stock,
	}
	if err := srv.store.CreatePricedItem(&item); err != nil {
		t.Fatalf("create item %s: %v", name, err)
	}
	return item
}

func TestHandleSaveRecipeRoundTripsLabourUnion(t *testing.T) {
	srv := newTestServer(t)
	flour := seedServerItem(t, srv, "Flour", "kg", 2, 20)

	rr := doRequest(t, srv.handleSaveRecipe, http.MethodPost, "/api/recipes", map[string]any{
		"name":                 "Focaccia",
		"category":             "bakery",
		"servings":             8,
		"labour_minutes":       45.0,
		"labour_method":        "custom",
		"custom_salary":        2200.0,
		"custom_working_days":  22.0,
		"custom_hours_per_day": 8.0,
		"ingredients": []map[string]any{
			{"kind": "item", "ref_id": flour.ID, "quantity": 1.0, "unit": "kg"},
		},
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	created := decodeBody[recipePayload](t, rr)
	if created.ID == "" {
		t.Fatal("expected server-assigned recipe id")
	}

	rr = doRequest(t, srv.handleGetRecipe, http.MethodGet, "/api/recipes/"+created.ID, nil, map[string]string{"id": created.ID})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	got := decodeBody[recipePayload](t, rr)
	if got.LabourMethod != "custom" {
		t.Fatalf("expected custom labour method, got %q", got.LabourMethod)
	}
	if got.CustomSalary != 2200 || got.CustomWorkingDays != 22 || got.CustomHoursPerDay != 8 {
		t.Fatalf("custom labour fields did not survive: %+v", got)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].RefID != flour.ID {
		t.Fatalf("unexpected ingredients: %+v", got.Ingredients)
	}
}

func TestHandleSaveRecipeRejectsCycle(t *testing.T) {
	srv := newTestServer(t)

	base := catalog.Recipe{
		BusinessID: seed.DefaultBusinessID,
		Name:       "Stock",
		Servings:   4,
		Labour:     catalog.BlendedLabour{},
	}
	if err := srv.store.SaveRecipe(&base); err != nil {
		t.Fatalf("save base recipe: %v", err)
	}
	parent := catalog.Recipe{
		BusinessID: seed.DefaultBusinessID,
		Name:       "Soup",
		Servings:   4,
		Labour:     catalog.BlendedLabour{},
		Ingredients: []catalog.Ingredient{
			{Kind: catalog.IngredientRecipe, RefID: base.ID, Quantity: 1, Unit: "serving"},
		},
	}
	if err := srv.store.SaveRecipe(&parent); err != nil {
		t.Fatalf("save parent recipe: %v", err)
	}

	// Closing the loop Stock -> Soup must be refused at save time.
	rr := doRequest(t, srv.handleSaveRecipe, http.MethodPut, "/api/recipes/"+base.ID, map[string]any{
		"name":          "Stock",
		"servings":      4,
		"labour_method": "blended",
		"ingredients": []map[string]any{
			{"kind": "recipe", "ref_id": parent.ID, "quantity": 1.0, "unit": "serving"},
		},
	}, map[string]string{"id": base.ID})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rr.Code, rr.Body.String())
	}

	stored, err := srv.store.Recipe(base.ID)
	if err != nil {
		t.Fatalf("reload base recipe: %v", err)
	}
	if len(stored.Ingredients) != 0 {
		t.Fatalf("rejected save must not persist, got ingredients %+v", stored.Ingredients)
	}
}

func TestHandleRecipeCostReturnsBreakdown(t *testing.T) {
	srv := newTestServer(t)
	tomato := seedServerItem(t, srv, "Tomatoes", "kg", 2, 30)

	overhead := catalog.Overhead{
		BusinessID:  seed.DefaultBusinessID,
		Name:        "Electricity",
		Type:        catalog.OverheadVariable,
		MonthlyCost: 200,
	}
	if err := srv.store.SaveOverhead(&overhead); err != nil {
		t.Fatalf("save overhead: %v", err)
	}

	recipe := catalog.Recipe{
		BusinessID:          seed.DefaultBusinessID,
		Name:                "Tomato Soup",
		Servings:            4,
		PackagingPerServing: 0.25,
		Labour:              catalog.BlendedLabour{},
		Ingredients: []catalog.Ingredient{
			{Kind: catalog.IngredientItem, RefID: tomato.ID, Quantity: 2, Unit: "kg"},
		},
	}
	if err := srv.store.SaveRecipe(&recipe); err != nil {
		t.Fatalf("save recipe: %v", err)
	}

	rr := doRequest(t, srv.handleRecipeCost, http.MethodGet, "/api/recipes/"+recipe.ID+"/cost", nil, map[string]string{"id": recipe.ID})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// Raw 2kg x 2 = 4, packaging 0.25 x 4 = 1, overhead 200/100 x 4 = 8.
	// No staff on payroll, so blended labour contributes nothing.
	bd := decodeBody[costing.Breakdown](t, rr)
	if math.Abs(bd.RawMaterialCost-4) > 1e-9 {
		t.Fatalf("raw material cost = %v, want 4", bd.RawMaterialCost)
	}
	if math.Abs(bd.PackagingCost-1) > 1e-9 {
		t.Fatalf("packaging cost = %v, want 1", bd.PackagingCost)
	}
	if math.Abs(bd.OverheadCost-8) > 1e-9 {
		t.Fatalf("overhead cost = %v, want 8", bd.OverheadCost)
	}
	if math.Abs(bd.TotalCost-13) > 1e-9 {
		t.Fatalf("total cost = %v, want 13", bd.TotalCost)
	}
	if math.Abs(bd.CostPerServing-3.25) > 1e-9 {
		t.Fatalf("cost per serving = %v, want 3.25", bd.CostPerServing)
	}
}

func TestHandleRecipeHistoryListsPoints(t *testing.T) {
	srv := newTestServer(t)

	recipe := catalog.Recipe{
		BusinessID: seed.DefaultBusinessID,
		Name:       "Granola",
		Servings:   10,
		Labour:     catalog.BlendedLabour{},
	}
	if err := srv.store.SaveRecipe(&recipe); err != nil {
		t.Fatalf("save recipe: %v", err)
	}

	day1 := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	for i, cost := range []float64{10.5, 11.25} {
		if _, err := srv.store.AppendCostHistory(recipe.ID, day1.AddDate(0, 0, i), cost); err != nil {
			t.Fatalf("append cost history: %v", err)
		}
	}

	rr := doRequest(t, srv.handleRecipeHistory, http.MethodGet, "/api/recipes/"+recipe.ID+"/history", nil, map[string]string{"id": recipe.ID})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	points := decodeBody[[]catalog.CostPoint](t, rr)
	if len(points) != 2 {
		t.Fatalf("expected 2 history points, got %d", len(points))
	}
	if points[0].Cost != 10.5 || points[1].Cost != 11.25 {
		t.Fatalf("unexpected history: %+v", points)
	}

	rr = doRequest(t, srv.handleRecipeHistory, http.MethodGet, "/api/recipes/missing/history", nil, map[string]string{"id": "missing"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown recipe, got %d", rr.Code)
	}
}
