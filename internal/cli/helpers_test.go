package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader *mockConfigLoader
	client       *mockClientFactory
	processor    *mockProcessor
}

func newTestMocks() *testMocks {
	proc := &mockProcessor{}
	return &testMocks{
		configLoader: &mockConfigLoader{},
		client:       &mockClientFactory{mockProcessor: proc},
		processor:    proc,
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env, the mocks for assertions, and the captured stdout/stderr.
func testEnv(getenv map[string]string) (*Env, *testMocks, *syncBuffer, *syncBuffer) {
	mocks := newTestMocks()
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	env := &Env{
		Stdout:        stdout,
		Stderr:        stderr,
		Getenv:        staticEnv(getenv),
		ConfigLoader:  mocks.configLoader,
		ClientFactory: mocks.client,
	}
	return env, mocks, stdout, stderr
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// writeInputFiles creates files in a fresh temp directory and returns it.
func writeInputFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to create input file: %v", err)
		}
	}
	return dir
}
