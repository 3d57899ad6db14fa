package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
)

func (s *server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := s.store.ListStaff(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, staff)
}

func (s *server) handleSaveStaff(w http.ResponseWriter, r *http.Request) {
	var member catalog.StaffMember
	if !s.decode(w, r, &member) {
		return
	}
	member.BusinessID = businessID(r)
	if member.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if member.MonthlySalary < 0 {
		s.respondError(w, http.StatusBadRequest, "monthly_salary must be greater than or equal to 0")
		return
	}

	if err := s.store.SaveStaff(&member); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, member)
}

func (s *server) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteStaff(chi.URLParam(r, "id")); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *server) handleListOverheads(w http.ResponseWriter, r *http.Request) {
	overheads, err := s.store.ListOverheads(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, overheads)
}

func (s *server) handleSaveOverhead(w http.ResponseWriter, r *http.Request) {
	var overhead catalog.Overhead
	if !s.decode(w, r, &overhead) {
		return
	}
	overhead.BusinessID = businessID(r)
	if overhead.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if overhead.Type != catalog.OverheadFixed && overhead.Type != catalog.OverheadVariable {
		s.respondError(w, http.StatusBadRequest, "type must be fixed or variable")
		return
	}
	if overhead.MonthlyCost < 0 {
		s.respondError(w, http.StatusBadRequest, "monthly_cost must be greater than or equal to 0")
		return
	}

	if err := s.store.SaveOverhead(&overhead); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, overhead)
}

func (s *server) handleDeleteOverhead(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOverhead(chi.URLParam(r, "id")); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.Settings(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, settings)
}

func (s *server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings catalog.BusinessSettings
	if !s.decode(w, r, &settings) {
		return
	}
	if settings.WorkingDaysPerMonth < 0 || settings.HoursPerDay < 0 ||
		settings.DishesProducedPerMonth < 0 || settings.DishesSoldPerMonth < 0 {
		s.respondError(w, http.StatusBadRequest, "settings values must be greater than or equal to 0")
		return
	}

	if err := s.store.UpdateSettings(businessID(r), settings); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, settings)
}
