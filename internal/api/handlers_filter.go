package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/respond"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
)

// FilterHandler exposes the set-based filter pipeline. Request keys keep the
// snake_case names the original frontend sends.
type FilterHandler struct {
	svc *services.RecommendService
}

func NewFilterHandler(svc *services.RecommendService) *FilterHandler {
	return &FilterHandler{svc: svc}
}

// FilterProperties POST /api/filter_properties
func (h *FilterHandler) FilterProperties(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BudgetRange   []float64 `json:"budget_range"`
		Features      []string  `json:"features"`
		PropertyTypes []string  `json:"property_types"`
		Locations     []string  `json:"locations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	fr := services.FilterRequest{
		Types:     req.PropertyTypes,
		Features:  req.Features,
		Locations: req.Locations,
	}
	switch len(req.BudgetRange) {
	case 0:
	case 2:
		fr.BudgetMin = &req.BudgetRange[0]
		fr.BudgetMax = &req.BudgetRange[1]
	default:
		respond.WriteBadRequest(w, "budget_range must be [min, max]")
		return
	}

	res, err := h.svc.Filter(r.Context(), fr)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": res.Properties,
		"count":      len(res.Properties),
		"statistics": res.Stats,
	})
}

// FilterOptions GET /api/filter_options
func (h *FilterHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.svc.Options(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"features":       opts.Features,
		"property_types": opts.Types,
		"locations":      opts.Locations,
		"price_range":    map[string]float64{"min": opts.MinPrice, "max": opts.MaxPrice},
	})
}
