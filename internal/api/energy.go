package api

import (
	"net/http"
	"time"
)

// historyRanges maps the accepted range query values to durations.
var historyRanges = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// energyEnabled guards the energy endpoints; the simulator is optional.
func (s *Server) energyEnabled(w http.ResponseWriter) bool {
	if s.energy == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "energy monitoring is disabled")
		return false
	}
	return true
}

// handleEnergyCurrent returns the latest usage sample.
func (s *Server) handleEnergyCurrent(w http.ResponseWriter, _ *http.Request) {
	if !s.energyEnabled(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.energy.Current())
}

// handleEnergyHistory returns usage samples over a trailing window.
// The range query accepts 24h, 7d or 30d and defaults to 24h.
func (s *Server) handleEnergyHistory(w http.ResponseWriter, r *http.Request) {
	if !s.energyEnabled(w) {
		return
	}

	rangeStr := r.URL.Query().Get("range")
	if rangeStr == "" {
		rangeStr = "24h"
	}
	window, ok := historyRanges[rangeStr]
	if !ok {
		writeBadRequest(w, "range must be one of 24h, 7d, 30d")
		return
	}

	samples := s.energy.History(time.Now().Add(-window))
	writeJSON(w, http.StatusOK, map[string]any{
		"range":   rangeStr,
		"samples": samples,
		"count":   len(samples),
	})
}

// handleEnergyStats returns usage statistics for the trailing 24 hours.
func (s *Server) handleEnergyStats(w http.ResponseWriter, _ *http.Request) {
	if !s.energyEnabled(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.energy.Stats())
}

// handleEnvironment returns the modelled indoor climate.
func (s *Server) handleEnvironment(w http.ResponseWriter, _ *http.Request) {
	if !s.energyEnabled(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.energy.Environment())
}
