package domain

import (
	"context"
	"strings"
)

// DetectRequest is the JSON body of POST /api/pdf-language.
type DetectRequest struct {
	Text string `json:"text"`
}

// Validate rejects blank text.
func (r *DetectRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrMissingText
	}
	return nil
}

// TextDetection is the model's answer for the raw-text path.
type TextDetection struct {
	Language    string `json:"language"`
	ISOCode     string `json:"isoCode"`
	Translation string `json:"translation"`
}

// DocumentDetection is the answer for an uploaded PDF.
type DocumentDetection struct {
	Transcript           string `json:"transcript"`
	DetectedLanguage     string `json:"detected_language"`
	ISOCode              string `json:"iso_code"`
	TranslationToEnglish string `json:"translation_to_english"`
	ArchiveKey           string `json:"archive_key,omitempty"`
}

// SummaryRequest is the body of POST /api/generate-summary.
type SummaryRequest struct {
	Transcript       *string `json:"transcript"`
	Language         *string `json:"language"`
	DetectedLanguage string  `json:"detected_language,omitempty"`
}

// Validate mirrors the two distinct client errors of the summary endpoint.
func (r *SummaryRequest) Validate() error {
	if r.Transcript == nil || r.Language == nil || strings.TrimSpace(*r.Language) == "" {
		return &ValidationError{Message: "Missing transcript or language in request"}
	}
	if strings.TrimSpace(*r.Transcript) == "" {
		return &ValidationError{Field: "transcript", Message: "Empty transcript provided"}
	}
	return nil
}

// Summary is the result of a summary request.
type Summary struct {
	Summary  string `json:"summary"`
	Language string `json:"language"`
}

// UploadedFile is a scroll received through a multipart upload.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// LanguageModel sends a single prompt to a generative-language backend and
// returns the reply text.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions tunes a single model call.
type GenerateOptions struct {
	JSON        bool
	Temperature *float32
}

// TextExtractor pulls plain text out of a PDF.
type TextExtractor interface {
	ExtractText(pdf []byte) (string, error)
}

// ScrollArchive stores uploaded source files under a content fingerprint.
type ScrollArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// IntakeService detects, translates and summarizes documents.
type IntakeService interface {
	DetectText(ctx context.Context, text string) (*TextDetection, error)
	DetectDocument(ctx context.Context, file UploadedFile) (*DocumentDetection, error)
	Summarize(ctx context.Context, req SummaryRequest) (*Summary, error)
}
