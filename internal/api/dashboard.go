package api

import (
	"net/http"
	"time"

	"github.com/hearthhome/hearth-core/internal/energy"
)

// dashboardSummary is the response body for GET /api/dashboard/summary.
// EstimatedLoad is derived from which devices are on right now;
// MeasuredUsage comes from the household simulation.
type dashboardSummary struct {
	TotalDevices  int                 `json:"totalDevices"`
	ActiveDevices int                 `json:"activeDevices"`
	EstimatedLoad float64             `json:"estimatedLoad"` // kW
	MeasuredUsage *float64            `json:"measuredUsage,omitempty"`
	Environment   *energy.Environment `json:"environment,omitempty"`
	Automations   int                 `json:"automations"`
	LastUpdated   time.Time           `json:"lastUpdated"`
}

// handleDashboardSummary aggregates the figures the dashboard shows on
// one card: device counts, estimated and measured load, and climate.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, _ *http.Request) {
	devices := s.devices.List()

	active := 0
	for _, d := range devices {
		if d.Status {
			active++
		}
	}

	summary := dashboardSummary{
		TotalDevices:  len(devices),
		ActiveDevices: active,
		EstimatedLoad: energy.EstimateLoadKW(devices),
		Automations:   s.rules.Count(),
		LastUpdated:   time.Now().UTC(),
	}

	if s.energy != nil {
		usage := s.energy.Current().Usage
		summary.MeasuredUsage = &usage
		env := s.energy.Environment()
		summary.Environment = &env
	}

	writeJSON(w, http.StatusOK, summary)
}
