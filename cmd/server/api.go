package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/sales"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/seed"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/store"
)

type server struct {
	store    *store.Store
	recorder *sales.Recorder
	log      *zap.Logger
}

// businessID scopes a request to one business. The single-tenant default
// applies when the client does not say otherwise.
func businessID(r *http.Request) string {
	if id := r.URL.Query().Get("business"); id != "" {
		return id
	}
	return seed.DefaultBusinessID
}

func (s *server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

// respondStoreError maps the store's sentinel errors onto HTTP statuses.
func (s *server) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrItemReferenced), errors.Is(err, store.ErrRecipeReferenced):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInsufficientStock):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("storage failure", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *server) respondValidation(w http.ResponseWriter, err error) bool {
	var v *catalog.ValidationError
	if errors.As(err, &v) {
		s.respondError(w, http.StatusBadRequest, v.Error())
		return true
	}
	return false
}
