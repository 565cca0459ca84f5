package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/respond"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/match"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
)

// MatchHandler exposes the scoring engine: weighted smart match around a
// geocoded center, plain radius search, and direct recommendations.
type MatchHandler struct {
	svc *services.RecommendService
}

func NewMatchHandler(svc *services.RecommendService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// SmartMatch POST /api/smart_match
func (h *MatchHandler) SmartMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CenterLocation   string   `json:"center_location"`
		Radius           float64  `json:"radius"`
		SelectedTypes    []string `json:"selected_types"`
		SelectedFeatures []string `json:"selected_features"`
		MinBudget        float64  `json:"min_budget"`
		MaxBudget        float64  `json:"max_budget"`
		LocationWeight   float64  `json:"location_weight"`
		TypeWeight       float64  `json:"type_weight"`
		FeaturesWeight   float64  `json:"features_weight"`
		PriceWeight      float64  `json:"price_weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.CenterLocation == "" {
		req.CenterLocation = "Toronto"
	}
	if req.MaxBudget <= 0 {
		req.MaxBudget = 1000
	}

	matches, err := h.svc.SmartMatch(r.Context(), services.SmartMatchRequest{
		Location: req.CenterLocation,
		RadiusKm: req.Radius,
		Prefs: model.Preferences{
			BudgetMin:        req.MinBudget,
			BudgetMax:        req.MaxBudget,
			Types:            req.SelectedTypes,
			RequiredFeatures: req.SelectedFeatures,
			LocationWeight:   defaultWeight(req.LocationWeight),
			TypeWeight:       defaultWeight(req.TypeWeight),
			FeaturesWeight:   defaultWeight(req.FeaturesWeight),
			PriceWeight:      defaultWeight(req.PriceWeight),
		},
	})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": matches,
		"count":      len(matches),
	})
}

// SearchByLocation POST /api/search_by_location
func (h *MatchHandler) SearchByLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query    string  `json:"query"`
		RadiusKm float64 `json:"radius_km"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Query == "" {
		respond.WriteBadRequest(w, "query is required")
		return
	}
	if req.RadiusKm <= 0 {
		req.RadiusKm = 20
	}

	center, hits, err := h.svc.SearchByLocation(r.Context(), req.Query, req.RadiusKm)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": hits,
		"count":      len(hits),
		"search_location": map[string]interface{}{
			"query":     req.Query,
			"lat":       center.Lat,
			"lon":       center.Lon,
			"radius_km": req.RadiusKm,
		},
	})
}

// Recommend POST /api/recommend
func (h *MatchHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preferences model.Preferences `json:"preferences"`
		TopN        int               `json:"top_n"`
		Mode        string            `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	mode, err := match.ParseMode(req.Mode)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if req.TopN <= 0 {
		req.TopN = 10
	}

	recs, err := h.svc.Recommend(r.Context(), req.Preferences, req.TopN, mode)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// defaultWeight keeps absent weights neutral instead of zeroing a criterion.
func defaultWeight(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}
