package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"alexandria-server/internal/domain"

	"github.com/gen2brain/go-fitz"
)

const (
	pdfMagic    = "%PDF-"
	pageTimeout = 90 * time.Second
)

// PDFProcessor handles PDF text extraction
type PDFProcessor struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(logger domain.Logger) *PDFProcessor {
	return &PDFProcessor{
		logger:      logger,
		pageTimeout: pageTimeout,
	}
}

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte(pdfMagic))
}

// ExtractText returns the text of every page, pages separated by a blank line.
// A page that fails or times out contributes nothing; the scroll may still
// have readable pages.
func (p *PDFProcessor) ExtractText(pdfBytes []byte) (string, error) {
	if !IsPDF(pdfBytes) {
		return "", domain.ErrNotPDF
	}

	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()

	type pageResult struct {
		text string
		err  error
	}

	pages := make([]string, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var res pageResult
		select {
		case res = <-resultCh:
		case <-time.After(p.pageTimeout):
			p.logger.Warn("PDF page extraction timeout; skipping page", "page", pageNum+1, "total", numPages, "timeout_sec", int(p.pageTimeout.Seconds()))
			// buffered channel; the goroutine can still exit
			continue
		}
		if res.err != nil {
			p.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", res.err)
			continue
		}

		text := strings.TrimSpace(sanitizeText(res.text))
		if text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// sanitizeText drops NULs, stray control characters and surrogates so the
// transcript can be JSON-encoded and embedded in a prompt.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
			result.WriteRune(r)
		case r >= 0x20 && r < 0x7F:
			result.WriteRune(r)
		case r >= 0x7F && r <= 0x10FFFF && (r < 0xD800 || r > 0xDFFF):
			if r == 0xFFFD {
				continue
			}
			result.WriteRune(r)
		}
	}

	return result.String()
}
