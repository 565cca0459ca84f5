package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	respond "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/respond"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
)

// PropertyHandler is a thin HTTP transport over PropertyService.
type PropertyHandler struct {
	svc *services.PropertyService
}

func NewPropertyHandler(svc *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// ListProperties GET /api/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.ListProperties(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"properties": props, "count": len(props)})
}

// GetProperty GET /api/properties/{propertyId}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["propertyId"], 10, 64)
	if err != nil {
		respond.WriteBadRequest(w, "invalid property id")
		return
	}
	p, err := h.svc.GetProperty(r.Context(), id)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// CreateProperty POST /api/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location     string   `json:"location"`
		Type         string   `json:"type"`
		NightlyPrice float64  `json:"nightlyPrice"`
		Features     []string `json:"features"`
		Tags         []string `json:"tags"`
		ImageURL     *string  `json:"imageUrl"`
		ImageAlt     *string  `json:"imageAlt"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	p := &model.Property{
		Location:     req.Location,
		Type:         req.Type,
		NightlyPrice: req.NightlyPrice,
		Features:     req.Features,
		Tags:         req.Tags,
		ImageURL:     req.ImageURL,
		ImageAlt:     req.ImageAlt,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	out, err := h.svc.CreateProperty(r.Context(), p)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}
