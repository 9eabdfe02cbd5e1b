package handler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"alexandria-server/internal/domain"
)

type mockIntakeService struct {
	textResult *domain.TextDetection
	docResult  *domain.DocumentDetection
	summary    *domain.Summary
	err        error

	textCalls    []string
	docCalls     []domain.UploadedFile
	summaryCalls []domain.SummaryRequest
}

func (m *mockIntakeService) DetectText(ctx context.Context, text string) (*domain.TextDetection, error) {
	m.textCalls = append(m.textCalls, text)
	if m.err != nil {
		return nil, m.err
	}
	return m.textResult, nil
}

func (m *mockIntakeService) DetectDocument(ctx context.Context, file domain.UploadedFile) (*domain.DocumentDetection, error) {
	m.docCalls = append(m.docCalls, file)
	if m.err != nil {
		return nil, m.err
	}
	return m.docResult, nil
}

func (m *mockIntakeService) Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.Summary, error) {
	m.summaryCalls = append(m.summaryCalls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

type mockAuthService struct {
	claims      *domain.SessionClaims
	token       string
	err         error
	lastToken   string
	registered  []domain.RegisterRequest
	loginCalled int
}

func (m *mockAuthService) Register(ctx context.Context, req domain.RegisterRequest) error {
	m.registered = append(m.registered, req)
	return m.err
}

func (m *mockAuthService) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	m.loginCalled++
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func (m *mockAuthService) ValidateToken(token string) (*domain.SessionClaims, error) {
	m.lastToken = token
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

type mockGraphService struct {
	data       *domain.GraphData
	extraction *domain.GraphExtraction
	err        error
	texts      []string
}

func (m *mockGraphService) GraphData(ctx context.Context) (*domain.GraphData, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

func (m *mockGraphService) Extract(ctx context.Context, text string) (*domain.GraphExtraction, error) {
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	return m.extraction, nil
}

// memoryAccounts enforces unique emails the way the users table does.
type memoryAccounts struct {
	mu   sync.Mutex
	rows map[string]domain.Account
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{rows: make(map[string]domain.Account)}
}

func (m *memoryAccounts) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[account.Email]; ok {
		return domain.ErrEmailAlreadyRegistered
	}
	m.rows[account.Email] = *account
	return nil
}

func (m *memoryAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.rows[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

type stubModel struct {
	reply string
	err   error
	calls int
}

func (s *stubModel) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	s.calls++
	return s.reply, s.err
}

// discardLogger drops every entry.
type discardLogger struct{}

func newDiscardLogger() domain.Logger { return discardLogger{} }

func (discardLogger) Info(string, ...interface{})        {}
func (discardLogger) Error(string, error, ...interface{}) {}
func (discardLogger) Debug(string, ...interface{})       {}
func (discardLogger) Warn(string, ...interface{})        {}

// buildTextPDF writes a minimal PDF with one Helvetica line per page. An
// empty string yields a page with no text.
func buildTextPDF(pages ...string) []byte {
	var (
		buf     bytes.Buffer
		offsets []int
	)
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, text := range pages {
		writeObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}
