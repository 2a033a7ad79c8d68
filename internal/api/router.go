package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Health check (no auth required)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Reachable without a token
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/auth/change-password", s.handleChangePassword)
			r.Get("/auth/me", s.handleMe)

			// Chat command endpoint
			r.Post("/chat", s.handleChat)

			// Device endpoints
			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListDevices)
				r.Get("/{id}", s.handleGetDevice)
				r.Post("/{id}/toggle", s.handleToggleDevice)
			})

			// Automation endpoints
			r.Route("/automations", func(r chi.Router) {
				r.Get("/", s.handleListAutomations)
				r.Post("/", s.handleCreateAutomation)
				r.Delete("/{id}", s.handleDeleteAutomation)
				r.Post("/{id}/toggle", s.handleToggleAutomation)
			})

			// Dashboard aggregate
			r.Get("/dashboard/summary", s.handleDashboardSummary)

			// Energy telemetry endpoints
			r.Route("/energy", func(r chi.Router) {
				r.Get("/current", s.handleEnergyCurrent)
				r.Get("/history", s.handleEnergyHistory)
				r.Get("/stats", s.handleEnergyStats)
				r.Get("/environment", s.handleEnvironment)
			})
		})
	})

	// WebSocket event stream (auth via token query parameter)
	r.Get(s.wsPath(), s.handleWebSocket)

	return r
}

func (s *Server) wsPath() string {
	if s.wsCfg.Path == "" {
		return "/ws"
	}
	return s.wsCfg.Path
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"devices": s.devices.Count(),
	})
}
