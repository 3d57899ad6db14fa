package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/costing"
)

func (s *server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListPricedItems(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var item catalog.PricedItem
	if !s.decode(w, r, &item) {
		return
	}
	item.ID = ""
	item.BusinessID = businessID(r)
	if item.YieldPercent == 0 {
		item.YieldPercent = 100
	}

	if err := catalog.ValidatePricedItem(item); err != nil {
		if !s.respondValidation(w, err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := s.store.CreatePricedItem(&item); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, item)
}

func (s *server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.PricedItem(chi.URLParam(r, "id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var item catalog.PricedItem
	if !s.decode(w, r, &item) {
		return
	}
	item.ID = chi.URLParam(r, "id")
	item.BusinessID = businessID(r)

	if err := catalog.ValidatePricedItem(item); err != nil {
		if !s.respondValidation(w, err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := s.store.UpdatePricedItem(item); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePricedItem(chi.URLParam(r, "id")); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *server) handleListConversions(w http.ResponseWriter, r *http.Request) {
	conversions, err := s.store.ListConversions(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, conversions)
}

func (s *server) handleCreateConversion(w http.ResponseWriter, r *http.Request) {
	var conversion catalog.UnitConversion
	if !s.decode(w, r, &conversion) {
		return
	}
	conversion.ID = ""
	conversion.BusinessID = businessID(r)

	if err := catalog.ValidateConversion(conversion); err != nil {
		if !s.respondValidation(w, err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := s.store.AddConversion(&conversion); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, conversion)
}

func (s *server) handleDeleteConversion(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteConversion(chi.URLParam(r, "id")); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

type conversionResult struct {
	Factor float64 `json:"factor"`
	Found  bool    `json:"found"`
}

func (s *server) handleResolveConversion(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		s.respondError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	conversions, err := s.store.ListConversions(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	table := costing.NewConversionTableFrom(conversions)
	factor, found := table.Resolve(from, to, r.URL.Query().Get("item"))
	s.respondJSON(w, http.StatusOK, conversionResult{Factor: factor, Found: found})
}
