package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"alexandria-server/internal/domain"
)

// GraphHandler serves the knowledge graph built from transcripts.
type GraphHandler struct {
	graphService domain.GraphService
	logger       domain.Logger
}

func NewGraphHandler(graphService domain.GraphService, logger domain.Logger) *GraphHandler {
	return &GraphHandler{
		graphService: graphService,
		logger:       logger,
	}
}

func (h *GraphHandler) GraphData(w http.ResponseWriter, r *http.Request) {
	data, err := h.graphService.GraphData(r.Context())
	if err != nil {
		writeServiceError(w, err, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *GraphHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req domain.DetectRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 10<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing text")
		return
	}

	if claims, ok := GetClaimsFromContext(r); ok {
		h.logger.Info("Graph extraction requested", "account_id", claims.ID, "text_len", len(req.Text))
	}

	result, err := h.graphService.Extract(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err, "Gemini API error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
