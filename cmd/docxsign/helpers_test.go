package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	docxsign "github.com/alnah/go-docxsign"
	"github.com/alnah/go-docxsign/internal/docx/docxtest"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mocks
// ---------------------------------------------------------------------------

type mockSigner struct {
	input  docxsign.Input
	calls  int
	result *docxsign.SignResult
	err    error
	closed bool
}

func (m *mockSigner) Sign(_ context.Context, input docxsign.Input) (*docxsign.SignResult, error) {
	m.calls++
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &docxsign.SignResult{
		Document: []byte("signed:" + string(input.Document)),
		Banner:   []byte("\x89PNG banner"),
		UUID:     input.Params.UUID,
		Width:    616,
		Footers:  1,
	}, nil
}

func (m *mockSigner) Close() error {
	m.closed = true
	return nil
}

type mockOpener struct {
	path    string
	command []string
	calls   int
	err     error
}

func (m *mockOpener) Open(path string, command []string) error {
	m.calls++
	m.path = path
	m.command = command
	return m.err
}

// testEnv bundles an Environment with its captured output and mocks.
type testEnv struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	signer  *mockSigner
	opener  *mockOpener
	options int // options passed to NewSigner
}

func newTestEnv(signer *mockSigner) *testEnv {
	if signer == nil {
		signer = &mockSigner{}
	}
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		signer: signer,
		opener: &mockOpener{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewSigner: func(opts ...docxsign.Option) (Signer, error) {
			te.options = len(opts)
			return te.signer, nil
		},
		Opener:     te.opener,
		IsTerminal: func() bool { return false },
	}
	return te
}

// writeDocument writes a small .docx into dir and returns its path.
func writeDocument(t *testing.T, dir, name string) string {
	t.Helper()
	data := docxtest.Build(t, docxtest.Options{
		Sections: []docxtest.Section{docxtest.LetterSection(nil)},
	})
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
