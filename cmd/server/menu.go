package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/costing"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/sales"
)

func (s *server) handleListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListMenuItems(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *server) handleSaveMenuItem(w http.ResponseWriter, r *http.Request) {
	var item catalog.MenuItem
	if !s.decode(w, r, &item) {
		return
	}
	item.BusinessID = businessID(r)
	if item.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if item.SalePrice < 0 {
		s.respondError(w, http.StatusBadRequest, "sale_price must be greater than or equal to 0")
		return
	}
	if item.RecipeID == "" {
		s.respondError(w, http.StatusBadRequest, "recipe_id is required")
		return
	}
	if _, err := s.store.Recipe(item.RecipeID); err != nil {
		s.respondStoreError(w, err)
		return
	}

	if err := s.store.SaveMenuItem(&item); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, item)
}

func (s *server) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMenuItem(chi.URLParam(r, "id")); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// menuEngineeringRow carries the per-item numbers behind a classification so
// the caller can see why an item landed in its quadrant.
type menuEngineeringRow struct {
	MenuItemID       string                 `json:"menu_item_id"`
	Name             string                 `json:"name"`
	SalePrice        float64                `json:"sale_price"`
	CostPerServing   float64                `json:"cost_per_serving"`
	ProfitPerServing float64                `json:"profit_per_serving"`
	SalesCount       int                    `json:"sales_count"`
	Classification   costing.Classification `json:"classification"`
}

type menuEngineeringResponse struct {
	Items         []menuEngineeringRow `json:"items"`
	AvgProfit     float64              `json:"avg_profit"`
	AvgPopularity float64              `json:"avg_popularity"`
}

func (s *server) handleMenuEngineering(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	engine := costing.FromSnapshot(snap, s.log)

	classes, err := engine.ClassifyMenuItems(snap.MenuItems)
	if err != nil {
		var cyc *costing.CyclicRecipeError
		if errors.As(err, &cyc) {
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := menuEngineeringResponse{Items: make([]menuEngineeringRow, 0, len(snap.MenuItems))}
	for _, m := range snap.MenuItems {
		var cps float64
		if recipe, ok := snap.RecipeByID(m.RecipeID); ok {
			if v, err := engine.CostPerServing(recipe); err == nil {
				cps = v
			}
		}
		row := menuEngineeringRow{
			MenuItemID:       m.ID,
			Name:             m.Name,
			SalePrice:        m.SalePrice,
			CostPerServing:   cps,
			ProfitPerServing: m.SalePrice - cps,
			SalesCount:       m.SalesCount,
			Classification:   classes[m.ID],
		}
		resp.AvgProfit += row.ProfitPerServing
		resp.AvgPopularity += float64(m.SalesCount)
		resp.Items = append(resp.Items, row)
	}
	if n := len(resp.Items); n > 0 {
		resp.AvgProfit /= float64(n)
		resp.AvgPopularity /= float64(n)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *server) handleListSales(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListSales(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *server) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Lines []sales.Line `json:"lines"`
	}
	if !s.decode(w, r, &payload) {
		return
	}

	sale, err := s.recorder.RecordSale(businessID(r), payload.Lines)
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrUnknownMenuItem), errors.Is(err, sales.ErrEmptySale):
			s.respondError(w, http.StatusBadRequest, err.Error())
		default:
			s.respondStoreError(w, err)
		}
		return
	}
	s.respondJSON(w, http.StatusCreated, sale)
}
