package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"alexandria-server/internal/domain"
)

const maxAuthBody = 1 << 20

// AuthHandler handles librarian registration and login
type AuthHandler struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService domain.AuthService, logger domain.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&req); err != nil ||
		strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password required.")
		return
	}

	if err := h.authService.Register(r.Context(), req); err != nil {
		writeServiceError(w, err, "Server error.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Account created successfully."})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&req); err != nil ||
		strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password required.")
		return
	}

	token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Server error.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

// Me returns the claims of the current session
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	writeJSON(w, http.StatusOK, claims)
}
