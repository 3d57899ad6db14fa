package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fathahmtk/Menu-Engineering-sub000/internal/catalog"
	"github.com/fathahmtk/Menu-Engineering-sub000/internal/costing"
)

// recipePayload flattens the labour costing union for transport. The
// labour_method tag selects which of the optional fields apply.
type recipePayload struct {
	ID                  string               `json:"id,omitempty"`
	Name                string               `json:"name"`
	Category            string               `json:"category"`
	Servings            int                  `json:"servings"`
	ProductionYield     float64              `json:"production_yield,omitempty"`
	ProductionUnit      string               `json:"production_unit,omitempty"`
	LabourMinutes       float64              `json:"labour_minutes"`
	PackagingPerServing float64              `json:"packaging_per_serving"`
	LabourMethod        string               `json:"labour_method"`
	CustomSalary        float64              `json:"custom_salary,omitempty"`
	CustomWorkingDays   float64              `json:"custom_working_days,omitempty"`
	CustomHoursPerDay   float64              `json:"custom_hours_per_day,omitempty"`
	StaffID             string               `json:"staff_id,omitempty"`
	TargetPrice         float64              `json:"target_price"`
	Ingredients         []catalog.Ingredient `json:"ingredients"`
}

func (p recipePayload) toRecipe(businessID string) catalog.Recipe {
	var labour catalog.LabourCosting
	switch catalog.LabourMethod(p.LabourMethod) {
	case catalog.LabourCustom:
		labour = catalog.CustomLabour{
			MonthlySalary: p.CustomSalary,
			WorkingDays:   p.CustomWorkingDays,
			HoursPerDay:   p.CustomHoursPerDay,
		}
	case catalog.LabourStaffAssigned:
		labour = catalog.StaffAssignedLabour{StaffID: p.StaffID}
	default:
		labour = catalog.BlendedLabour{}
	}

	return catalog.Recipe{
		ID:                  p.ID,
		BusinessID:          businessID,
		Name:                p.Name,
		Category:            p.Category,
		Servings:            p.Servings,
		ProductionYield:     p.ProductionYield,
		ProductionUnit:      p.ProductionUnit,
		LabourMinutes:       p.LabourMinutes,
		PackagingPerServing: p.PackagingPerServing,
		Labour:              labour,
		TargetPrice:         p.TargetPrice,
		Ingredients:         p.Ingredients,
	}
}

func toRecipePayload(r catalog.Recipe) recipePayload {
	p := recipePayload{
		ID:                  r.ID,
		Name:                r.Name,
		Category:            r.Category,
		Servings:            r.Servings,
		ProductionYield:     r.ProductionYield,
		ProductionUnit:      r.ProductionUnit,
		LabourMinutes:       r.LabourMinutes,
		PackagingPerServing: r.PackagingPerServing,
		LabourMethod:        string(catalog.LabourBlended),
		TargetPrice:         r.TargetPrice,
		Ingredients:         r.Ingredients,
	}
	switch l := r.Labour.(type) {
	case catalog.CustomLabour:
		p.LabourMethod = string(catalog.LabourCustom)
		p.CustomSalary = l.MonthlySalary
		p.CustomWorkingDays = l.WorkingDays
		p.CustomHoursPerDay = l.HoursPerDay
	case catalog.StaffAssignedLabour:
		p.LabourMethod = string(catalog.LabourStaffAssigned)
		p.StaffID = l.StaffID
	}
	return p
}

func (s *server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.store.ListRecipes(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	payloads := make([]recipePayload, 0, len(recipes))
	for _, recipe := range recipes {
		payloads = append(payloads, toRecipePayload(recipe))
	}
	s.respondJSON(w, http.StatusOK, payloads)
}

func (s *server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.store.Recipe(chi.URLParam(r, "id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toRecipePayload(recipe))
}

// handleSaveRecipe serves both creation and update; an update takes its id
// from the URL. Saving refuses recipes that would introduce a reference
// cycle, so stored data always remains costable.
func (s *server) handleSaveRecipe(w http.ResponseWriter, r *http.Request) {
	var payload recipePayload
	if !s.decode(w, r, &payload) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		payload.ID = id
	}
	recipe := payload.toRecipe(businessID(r))

	if err := catalog.ValidateRecipe(recipe); err != nil {
		if !s.respondValidation(w, err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := s.rejectCycles(recipe); err != nil {
		var cyclic *costing.CyclicRecipeError
		if errors.As(err, &cyclic) {
			s.respondError(w, http.StatusUnprocessableEntity, cyclic.Error())
			return
		}
		s.respondStoreError(w, err)
		return
	}

	if err := s.store.SaveRecipe(&recipe); err != nil {
		s.respondStoreError(w, err)
		return
	}

	status := http.StatusOK
	if r.Method == http.MethodPost {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, toRecipePayload(recipe))
}

// rejectCycles runs a cost computation over the snapshot with the incoming
// recipe substituted in, reusing the engine's cycle guard as the authority
// on whether the new ingredient list is well-formed.
func (s *server) rejectCycles(recipe catalog.Recipe) error {
	snap, err := s.store.Snapshot(recipe.BusinessID)
	if err != nil {
		return err
	}
	if recipe.ID != "" {
		snap.Recipes[recipe.ID] = recipe
	}
	_, err = costing.FromSnapshot(snap, s.log).CostBreakdown(recipe)
	return err
}

func (s *server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRecipe(chi.URLParam(r, "id")); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *server) handleRecipeCost(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(businessID(r))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	recipe, ok := snap.RecipeByID(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "recipe not found")
		return
	}

	breakdown, err := costing.FromSnapshot(snap, s.log).CostBreakdown(recipe)
	if err != nil {
		var cyclic *costing.CyclicRecipeError
		if errors.As(err, &cyclic) {
			s.respondError(w, http.StatusUnprocessableEntity, cyclic.Error())
			return
		}
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, breakdown)
}

func (s *server) handleRecipeHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Recipe(id); err != nil {
		s.respondStoreError(w, err)
		return
	}

	points, err := s.store.CostHistory(id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, points)
}
