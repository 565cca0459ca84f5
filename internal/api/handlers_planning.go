package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/respond"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/planning"
)

// PlanningHandler drives travel-planning conversations over HTTP.
type PlanningHandler struct {
	planner *planning.Planner
}

func NewPlanningHandler(p *planning.Planner) *PlanningHandler {
	return &PlanningHandler{planner: p}
}

// Advance POST /api/travel_planning
// An omitted session_id starts a fresh conversation; the reply always carries
// the id to send on the next turn.
func (h *PlanningHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Message == "" {
		respond.WriteBadRequest(w, "message is required")
		return
	}

	out, err := h.planner.Advance(r.Context(), req.SessionID, req.Message)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	resp := map[string]interface{}{
		"response":              out.Reply,
		"session_id":            out.Session.SessionID,
		"current_step":          out.Session.CurrentStep,
		"completion_percentage": planning.CompletionPercent(out.Session.Collected),
	}
	if out.Completed {
		resp["recommendations"] = out.Recommendations
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}

// GetSession GET /api/travel_planning/session/{sessionId}
func (h *PlanningHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.planner.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":            sess.SessionID,
		"current_step":          sess.CurrentStep,
		"completion_percentage": planning.CompletionPercent(sess.Collected),
		"collected_info":        sess.Collected,
		"conversation_count":    sess.ConversationCount,
	})
}

// DeleteSession DELETE /api/travel_planning/session/{sessionId}
func (h *PlanningHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.planner.Delete(mux.Vars(r)["sessionId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
