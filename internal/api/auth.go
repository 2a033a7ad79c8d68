package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hearthhome/hearth-core/internal/auth"
)

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the response body for POST /api/auth/login.
type loginResponse struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

// changePasswordRequest is the request body for POST /api/auth/change-password.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handleLogin authenticates a user and returns a JWT token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeUnauthorized(w, "invalid credentials")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeInternalError(w, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// handleRegister creates a standard user account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			writeError(w, http.StatusConflict, ErrCodeConflict, "username already in use")
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidUser):
			writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		default:
			s.logger.Error("registration failed", "error", err)
			writeInternalError(w, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleChangePassword updates the password of the authenticated user.
// A valid token is required even when require_auth is off.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.claimsFromRequest(r)
	if !ok {
		writeUnauthorized(w, "authorisation required")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeBadRequest(w, "current_password and new_password are required")
		return
	}

	err := s.auth.ChangePassword(r.Context(), claims.Subject, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeUnauthorized(w, "current password is incorrect")
			return
		}
		s.logger.Error("password change failed", "error", err, "user_id", claims.Subject)
		writeInternalError(w, "password change failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"changed": true})
}

// handleMe returns the identity carried by the caller's token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.claimsFromRequest(r)
	if !ok {
		writeUnauthorized(w, "authorisation required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":       claims.Subject,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
