package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MockMirror implements Mirror for testing without remote credentials.
// By default it reads the whole body and succeeds.
type MockMirror struct {
	BackendName string

	// Optional function override for custom test behavior
	UploadFunc func(ctx context.Context, name, contentType string, r io.Reader) (*MirroredFile, error)

	mu    sync.Mutex
	calls []MirrorCall
}

// MirrorCall records one Upload call.
type MirrorCall struct {
	Name        string
	ContentType string
	Body        []byte
}

// NewMockMirror creates a new mock mirror for testing
func NewMockMirror() *MockMirror {
	return &MockMirror{BackendName: "mock"}
}

func (m *MockMirror) Name() string { return m.BackendName }

func (m *MockMirror) Upload(ctx context.Context, name, contentType string, r io.Reader) (*MirroredFile, error) {
	var buf bytes.Buffer
	tee := io.TeeReader(r, &buf)

	var (
		file *MirroredFile
		err  error
	)
	if m.UploadFunc != nil {
		file, err = m.UploadFunc(ctx, name, contentType, tee)
	} else {
		_, err = io.Copy(io.Discard, tee)
		if err == nil {
			file = &MirroredFile{
				ID:  fmt.Sprintf("mock-%s", name),
				URL: fmt.Sprintf("https://mirror.example.com/%s", name),
			}
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, MirrorCall{Name: name, ContentType: contentType, Body: buf.Bytes()})
	m.mu.Unlock()

	return file, err
}

// Calls returns the recorded Upload calls.
func (m *MockMirror) Calls() []MirrorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MirrorCall, len(m.calls))
	copy(out, m.calls)
	return out
}

var _ Mirror = (*MockMirror)(nil)
