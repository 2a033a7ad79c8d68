package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hearthhome/hearth-core/internal/chat"
	"github.com/hearthhome/hearth-core/internal/device"
)

// handleListDevices returns all devices in directory order.
func (s *Server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	devices := s.devices.List()
	writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
}

// handleGetDevice returns a single device by ID.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	dev, err := s.devices.Get(id)
	if err != nil {
		if errors.Is(err, device.ErrNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		writeInternalError(w, "failed to get device")
		return
	}

	writeJSON(w, http.StatusOK, dev)
}

// handleToggleDevice flips a device on or off, bypassing the chat
// pipeline but sharing the same Directory mutation point and event
// stream.
func (s *Server) handleToggleDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	dev, err := s.devices.Get(id)
	if err != nil {
		if errors.Is(err, device.ErrNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		writeInternalError(w, "failed to get device")
		return
	}

	updated, err := s.devices.SetStatus(r.Context(), id, !dev.Status)
	if err != nil {
		s.logger.Error("toggling device", "error", err, "id", id)
		writeInternalError(w, "failed to toggle device")
		return
	}

	if s.hub != nil {
		s.hub.NotifyDeviceStatus(chat.StatusEvent{
			DeviceID:  updated.ID,
			Status:    updated.Status,
			Timestamp: time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, updated)
}
