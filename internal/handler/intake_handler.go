package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"alexandria-server/internal/domain"
)

const multipartMemory = 32 << 20

// IntakeHandler handles language detection, translation and summaries.
type IntakeHandler struct {
	intakeService domain.IntakeService
	logger        domain.Logger
	maxFileSize   int64
}

func NewIntakeHandler(intakeService domain.IntakeService, logger domain.Logger, maxFileSize int64) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
		logger:        logger,
		maxFileSize:   maxFileSize,
	}
}

// DetectLanguage accepts either a JSON {text} body or a multipart upload
// with a "file" field.
func (h *IntakeHandler) DetectLanguage(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		h.detectUpload(w, r)
		return
	}

	var req domain.DetectRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxFileSize)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Missing text")
		return
	}

	result, err := h.intakeService.DetectText(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err, "Gemini API error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *IntakeHandler) detectUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.logger.Warn("Failed to parse multipart form", "error", err, "request_id", GetRequestID(r))
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// a text-only form behaves like the JSON text path
		if values, ok := r.MultipartForm.Value["text"]; ok {
			text := ""
			if len(values) > 0 {
				text = values[0]
			}
			if strings.TrimSpace(text) == "" {
				writeError(w, http.StatusBadRequest, "Missing text")
				return
			}
			result, err := h.intakeService.DetectText(r.Context(), text)
			if err != nil {
				writeServiceError(w, err, "Gemini API error")
				return
			}
			writeJSON(w, http.StatusOK, result)
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", err, "filename", header.Filename)
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	h.logger.Info("Scroll uploaded", "filename", header.Filename, "size", len(data), "request_id", GetRequestID(r))

	result, err := h.intakeService.DetectDocument(r.Context(), domain.UploadedFile{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		writeServiceError(w, err, "Gemini API error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateSummary summarizes a transcript in the requested language.
func (h *IntakeHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req domain.SummaryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxFileSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing transcript or language in request")
		return
	}

	summary, err := h.intakeService.Summarize(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to generate summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
