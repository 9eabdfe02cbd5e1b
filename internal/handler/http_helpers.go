package handler

import (
	"encoding/json"
	"net/http"

	"alexandria-server/internal/domain"
	apperrors "alexandria-server/pkg/errors"
)

type contextKey string

const (
	claimsContextKey    contextKey = "claims"
	tokenContextKey     contextKey = "token"
	requestIDContextKey contextKey = "request_id"
)

// GetClaimsFromContext extracts the authenticated librarian from request context
func GetClaimsFromContext(r *http.Request) (*domain.SessionClaims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*domain.SessionClaims)
	return claims, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// GetRequestID returns the id assigned by the request logger, if any.
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps a service error to its status and client-safe
// message. Causes never reach the client.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	writeError(w, apperrors.GetStatusCode(err), apperrors.PublicMessage(err, fallback))
}
