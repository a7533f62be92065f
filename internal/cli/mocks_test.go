package cli

import (
	"context"
	"sync"

	"github.com/alnah/go-aidich/internal/batch"
	"github.com/alnah/go-aidich/internal/config"
	"github.com/alnah/go-aidich/internal/endpoint"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func(path string) (config.Config, error)

	mu        sync.Mutex
	loadCalls []string
}

func (m *mockConfigLoader) Load(path string) (config.Config, error) {
	m.mu.Lock()
	m.loadCalls = append(m.loadCalls, path)
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(path)
	}
	return config.Config{Username: "alice", Password: "s3cr3t"}, nil
}

func (m *mockConfigLoader) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

// ---------------------------------------------------------------------------
// Mock ClientFactory + Processor
// ---------------------------------------------------------------------------

type mockClientFactory struct {
	NewClientErr error

	mu             sync.Mutex
	newClientCalls []clientCall
	mockProcessor  *mockProcessor
}

type clientCall struct {
	Config  config.Config
	NumOpts int
}

func (m *mockClientFactory) NewClient(cfg config.Config, opts ...endpoint.Option) (batch.Processor, error) {
	m.mu.Lock()
	m.newClientCalls = append(m.newClientCalls, clientCall{Config: cfg, NumOpts: len(opts)})
	m.mu.Unlock()

	if m.NewClientErr != nil {
		return nil, m.NewClientErr
	}
	if m.mockProcessor != nil {
		return m.mockProcessor, nil
	}
	return &mockProcessor{}, nil
}

func (m *mockClientFactory) NewClientCalls() []clientCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]clientCall(nil), m.newClientCalls...)
}

type mockProcessor struct {
	ProcessFunc func(ctx context.Context, text string) (string, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockProcessor) Process(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, text)
	}
	return "processed", nil
}

func (m *mockProcessor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader    = (*mockConfigLoader)(nil)
	_ ClientFactory   = (*mockClientFactory)(nil)
	_ batch.Processor = (*mockProcessor)(nil)
)
