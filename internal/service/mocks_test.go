package service

import (
	"context"
	"strings"
	"sync"

	"alexandria-server/internal/domain"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg)
}

func (m *MockLogger) add(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.messages {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// MockLanguageModel replies with a canned string and records prompts.
type MockLanguageModel struct {
	reply   string
	err     error
	prompts []string
	opts    []domain.GenerateOptions
	block   bool
}

func (m *MockLanguageModel) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.reply, m.err
}

type MockExtractor struct {
	text  string
	err   error
	calls int
}

func (m *MockExtractor) ExtractText(pdf []byte) (string, error) {
	m.calls++
	return m.text, m.err
}

type MockArchive struct {
	objects map[string][]byte
	err     error
}

func NewMockArchive() *MockArchive {
	return &MockArchive{objects: make(map[string][]byte)}
}

func (m *MockArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if m.err != nil {
		return m.err
	}
	m.objects[key] = data
	return nil
}

// MockAccountRepository mimics the unique email constraint of the users table.
type MockAccountRepository struct {
	mu        sync.Mutex
	byEmail   map[string]*domain.Account
	createErr error
	getErr    error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{byEmail: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[account.Email]; ok {
		return domain.ErrEmailAlreadyRegistered
	}
	stored := *account
	m.byEmail[account.Email] = &stored
	return nil
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	account, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	stored := *account
	return &stored, nil
}

type MockGraphRepository struct {
	data    *domain.GraphData
	saved   []*domain.ExtractedGraph
	loadErr error
	saveErr error
}

func (m *MockGraphRepository) Load(ctx context.Context) (*domain.GraphData, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data, nil
}

func (m *MockGraphRepository) Save(ctx context.Context, graph *domain.ExtractedGraph) (*domain.GraphExtraction, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.saved = append(m.saved, graph)
	return &domain.GraphExtraction{NodesAdded: len(graph.Nodes), RelationshipsAdded: len(graph.Relationships)}, nil
}
