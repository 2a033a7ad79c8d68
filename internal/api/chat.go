package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hearthhome/hearth-core/internal/chat"
)

// chatRequest is the request body for POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the response body for POST /api/chat. The reply is
// nested so clients can distinguish it from transport-level errors.
type chatResponse struct {
	Response chat.Result `json:"response"`
}

// handleChat runs one chat message through the command pipeline.
//
// A missing or blank message gets a 400 with the same phrased reply the
// assistant gives for an empty input, so clients can render it directly.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, chatResponse{
			Response: s.chat.HandleMessage(r.Context(), ""),
		})
		return
	}

	result := s.chat.HandleMessage(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, chatResponse{Response: result})
}
