package main

// Notes:
// - Test infrastructure shared by the command tests: a buffered Environment
//   with a fixed clock, mock pools and converters, and file fixtures.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/muesli/termenv"

	md2apa "github.com/alnah/go-md2apa"
)

// ---------------------------------------------------------------------------
// Environment - Buffered I/O and fixed clock
// ---------------------------------------------------------------------------

var testNow = time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)

// newTestEnv returns an Environment writing to buffers. Converters are real
// so docx, html and txt conversions run without a browser.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := DefaultEnv()
	env.Now = func() time.Time { return testNow }
	env.Stdout = &stdout
	env.Stderr = &stderr
	env.TermWidth = func() (int, bool) { return 0, false }
	env.ColorProfile = func() termenv.Profile { return termenv.Ascii }
	return env, &stdout, &stderr
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

const sampleMarkdown = "# Sleep and Memory\n\n## Method\n\nParticipants **slept**.\n"

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// staticMockConverter returns a fixed result or error.
type staticMockConverter struct {
	data     []byte
	findings []md2apa.Finding
	err      error

	mu     sync.Mutex
	inputs []md2apa.Input
}

func (m *staticMockConverter) Convert(_ context.Context, input md2apa.Input) (*md2apa.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &md2apa.ConvertResult{Format: input.Format, Data: m.data, Findings: m.findings}, nil
}

// mockPool hands out the same converter to every worker.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

var _ Pool = (*mockPool)(nil)

func (p *mockPool) Acquire() (CLIConverter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *mockPool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
