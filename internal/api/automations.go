package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hearthhome/hearth-core/internal/automation"
	"github.com/hearthhome/hearth-core/internal/chat"
)

// createAutomationRequest is the request body for POST /api/automations.
// IsActive is a pointer so an omitted field defaults to active.
type createAutomationRequest struct {
	Name     string              `json:"name"`
	Trigger  automation.Trigger  `json:"trigger"`
	Actions  []automation.Action `json:"actions"`
	IsActive *bool               `json:"is_active"`
}

// handleListAutomations returns all automation rules.
func (s *Server) handleListAutomations(w http.ResponseWriter, _ *http.Request) {
	rules := s.rules.List()
	writeJSON(w, http.StatusOK, map[string]any{"automations": rules, "count": len(rules)})
}

// handleCreateAutomation creates a new automation rule.
func (s *Server) handleCreateAutomation(w http.ResponseWriter, r *http.Request) {
	var req createAutomationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	// The store validates structure but does not hold the directory, so
	// device existence is checked here.
	for _, action := range req.Actions {
		if _, err := s.devices.Get(action.DeviceID); err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "unknown device: "+action.DeviceID)
			return
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rule, err := s.rules.Create(r.Context(), &automation.Rule{
		Name:     req.Name,
		Trigger:  req.Trigger,
		Actions:  req.Actions,
		IsActive: active,
	})
	if err != nil {
		switch {
		case errors.Is(err, automation.ErrDuplicateName):
			writeError(w, http.StatusConflict, ErrCodeConflict, "automation name already in use")
		case errors.Is(err, automation.ErrInvalidRule):
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "invalid automation rule")
		default:
			s.logger.Error("creating automation", "error", err)
			writeInternalError(w, "failed to create automation")
		}
		return
	}

	s.broadcastAutomation(rule, "created")
	writeJSON(w, http.StatusCreated, rule)
}

// handleDeleteAutomation deletes an automation rule by ID.
func (s *Server) handleDeleteAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rule, err := s.rules.Get(id)
	if err != nil {
		writeNotFound(w, "automation not found")
		return
	}

	if err := s.rules.Delete(r.Context(), id); err != nil {
		if errors.Is(err, automation.ErrNotFound) {
			writeNotFound(w, "automation not found")
			return
		}
		s.logger.Error("deleting automation", "error", err, "id", id)
		writeInternalError(w, "failed to delete automation")
		return
	}

	s.broadcastAutomation(rule, "deleted")
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleAutomation flips a rule between active and inactive.
func (s *Server) handleToggleAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rule, err := s.rules.Toggle(r.Context(), id)
	if err != nil {
		if errors.Is(err, automation.ErrNotFound) {
			writeNotFound(w, "automation not found")
			return
		}
		s.logger.Error("toggling automation", "error", err, "id", id)
		writeInternalError(w, "failed to toggle automation")
		return
	}

	s.broadcastAutomation(rule, "toggled")
	writeJSON(w, http.StatusOK, rule)
}

// broadcastAutomation mirrors REST mutations onto the same event stream
// chat commands use.
func (s *Server) broadcastAutomation(rule *automation.Rule, change string) {
	if s.hub == nil {
		return
	}
	s.hub.NotifyAutomationChange(chat.AutomationEvent{
		AutomationID: rule.ID,
		Name:         rule.Name,
		Change:       change,
		IsActive:     rule.IsActive,
		Timestamp:    time.Now().UTC(),
	})
}
