package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"alexandria-server/internal/domain"
	apperrors "alexandria-server/pkg/errors"
)

const (
	msgModelError     = "Gemini API error"
	msgSummaryError   = "Failed to generate summary"
	msgNoTextInPDF    = "No text extracted from PDF. It may be scanned (need OCR)."
	msgMissingText    = "Missing text"
	msgNotPDF         = "Uploaded file is not a PDF"
	pdfContentType    = "application/pdf"
	defaultLLMTimeout = 60 * time.Second
)

var detectTemperature float32 = 0.2

type intakeService struct {
	model     domain.LanguageModel
	extractor domain.TextExtractor
	archive   domain.ScrollArchive
	logger    domain.Logger
	timeout   time.Duration
}

// NewIntakeService wires the document intake pipeline. archive may be nil,
// in which case uploaded scrolls are not kept.
func NewIntakeService(
	model domain.LanguageModel,
	extractor domain.TextExtractor,
	archive domain.ScrollArchive,
	logger domain.Logger,
	timeout time.Duration,
) *intakeService {
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	return &intakeService{
		model:     model,
		extractor: extractor,
		archive:   archive,
		logger:    logger,
		timeout:   timeout,
	}
}

// DetectText asks the model for the language, ISO code and English
// translation of text.
func (s *intakeService) DetectText(ctx context.Context, text string) (*domain.TextDetection, error) {
	req := domain.DetectRequest{Text: text}
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(msgMissingText, err)
	}

	reply, err := s.generate(ctx, detectTextPrompt(text), domain.GenerateOptions{JSON: true, Temperature: &detectTemperature})
	if err != nil {
		s.logger.Error("Language detection call failed", err)
		return nil, apperrors.NewUpstreamError(msgModelError, err)
	}

	result, err := parseTextDetection(reply)
	if err != nil {
		s.logger.Error("Language detection reply rejected", err, "reply_len", len(reply))
		return nil, apperrors.NewUpstreamError(msgModelError, err)
	}
	return result, nil
}

// DetectDocument extracts the transcript of an uploaded PDF and asks the
// model to detect its language and translate the opening of it.
func (s *intakeService) DetectDocument(ctx context.Context, file domain.UploadedFile) (*domain.DocumentDetection, error) {
	if !IsPDF(file.Data) {
		return nil, apperrors.NewValidationError(msgNotPDF, domain.ErrNotPDF)
	}

	transcript, err := s.extractor.ExtractText(file.Data)
	if err != nil {
		if errors.Is(err, domain.ErrNotPDF) {
			return nil, apperrors.NewValidationError(msgNotPDF, err)
		}
		s.logger.Error("PDF extraction failed", err, "filename", file.Filename)
		return nil, apperrors.NewValidationError(msgNoTextInPDF, fmt.Errorf("%w: %v", domain.ErrNoTextExtracted, err))
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, apperrors.NewValidationError(msgNoTextInPDF, domain.ErrNoTextExtracted)
	}

	archiveKey := s.archiveScroll(ctx, file)

	reply, err := s.generate(ctx, detectDocumentPrompt(transcript), domain.GenerateOptions{JSON: true, Temperature: &detectTemperature})
	if err != nil {
		s.logger.Error("Document detection call failed", err, "filename", file.Filename)
		return nil, apperrors.NewUpstreamError(msgModelError, err)
	}

	result, err := parseDocumentDetection(reply)
	if err != nil {
		s.logger.Error("Document detection reply rejected", err, "filename", file.Filename, "reply_len", len(reply))
		return nil, apperrors.NewUpstreamError(msgModelError, err)
	}
	result.Transcript = transcript
	result.ArchiveKey = archiveKey
	return result, nil
}

// Summarize asks the model for a summary of the transcript in the requested
// language.
func (s *intakeService) Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.Summary, error) {
	if err := req.Validate(); err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return nil, apperrors.NewValidationError(vErr.Message, err)
		}
		return nil, apperrors.NewValidationError(err.Error(), err)
	}

	language := strings.TrimSpace(*req.Language)
	prompt := summaryPrompt(*req.Transcript, language, strings.TrimSpace(req.DetectedLanguage))

	reply, err := s.generate(ctx, prompt, domain.GenerateOptions{})
	if err != nil {
		s.logger.Error("Summary call failed", err, "language", language)
		return nil, apperrors.NewUpstreamError(msgSummaryError, err)
	}

	summary := strings.TrimSpace(reply)
	if summary == "" {
		err := fmt.Errorf("%w: empty summary", domain.ErrInvalidModelResponse)
		s.logger.Error("Summary reply rejected", err, "language", language)
		return nil, apperrors.NewUpstreamError(msgSummaryError, err)
	}

	return &domain.Summary{Summary: summary, Language: language}, nil
}

func (s *intakeService) generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	if s.model == nil {
		return "", domain.ErrModelNotConfigured
	}
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.model.Generate(callCtx, prompt, opts)
	s.logger.Debug("Model call finished", "duration_ms", time.Since(start).Milliseconds(), "prompt_len", len(prompt))
	return reply, err
}

// archiveScroll stores the upload under its SHA-256 fingerprint. Failures are
// logged and otherwise ignored.
func (s *intakeService) archiveScroll(ctx context.Context, file domain.UploadedFile) string {
	if s.archive == nil {
		return ""
	}
	key := ScrollKey(file.Data)
	if err := s.archive.Put(ctx, key, file.Data, pdfContentType); err != nil {
		s.logger.Warn("Failed to archive scroll", "key", key, "filename", file.Filename, "error", err)
		return ""
	}
	s.logger.Info("Scroll archived", "key", key, "size", len(file.Data))
	return key
}

// ScrollKey is the archive object name for a PDF.
func ScrollKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + ".pdf"
}
