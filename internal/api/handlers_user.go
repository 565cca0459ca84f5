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

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

// CreateUser POST /api/users
// Omitted weights default to 1; supplied weights must be 1-10.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string   `json:"name"`
		GroupSize       *int     `json:"groupSize"`
		PreferredEnv    *string  `json:"preferredEnv"`
		BudgetMin       *float64 `json:"budgetMin"`
		BudgetMax       *float64 `json:"budgetMax"`
		WeighedLocation int      `json:"weighedLocation"`
		WeighedType     int      `json:"weighedType"`
		WeighedFeatures int      `json:"weighedFeatures"`
		WeighedPrice    int      `json:"weighedPrice"`
		TravelStartDate *string  `json:"travelStartDate"`
		TravelEndDate   *string  `json:"travelEndDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	u := &model.User{
		Name:            req.Name,
		GroupSize:       req.GroupSize,
		PreferredEnv:    req.PreferredEnv,
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		WeighedLocation: req.WeighedLocation,
		WeighedType:     req.WeighedType,
		WeighedFeatures: req.WeighedFeatures,
		WeighedPrice:    req.WeighedPrice,
		TravelStartDate: req.TravelStartDate,
		TravelEndDate:   req.TravelEndDate,
	}
	out, err := h.svc.CreateUser(r.Context(), u)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetUser GET /api/users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		respond.WriteBadRequest(w, "invalid user id")
		return
	}
	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

// UpdateWeights PUT /api/users/{userId}/weights
func (h *UserHandler) UpdateWeights(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		respond.WriteBadRequest(w, "invalid user id")
		return
	}
	var req struct {
		WeighedLocation int `json:"weighedLocation"`
		WeighedType     int `json:"weighedType"`
		WeighedFeatures int `json:"weighedFeatures"`
		WeighedPrice    int `json:"weighedPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.svc.UpdateWeights(r.Context(), id, req.WeighedLocation, req.WeighedType, req.WeighedFeatures, req.WeighedPrice); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}
