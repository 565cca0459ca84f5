package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/respond"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
)

// ChatHandler routes free-form messages to property generation, travel
// planning, or plain conversation.
type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler { return &ChatHandler{svc: svc} }

// Chat POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.svc.Handle(r.Context(), req.Message, req.SessionID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	resp := map[string]interface{}{
		"response": res.Reply,
		"intent":   res.Intent,
	}
	if res.SessionID != "" {
		resp["session_id"] = res.SessionID
		resp["current_step"] = res.Step
		resp["completion_percentage"] = res.Completion
	}
	if len(res.Properties) > 0 {
		resp["properties"] = res.Properties
	}
	if len(res.Recommendations) > 0 {
		resp["recommendations"] = res.Recommendations
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}
