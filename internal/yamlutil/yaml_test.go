package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails on
//   unmarshalable types (channels, functions), which config structs never hold.
// - TestInputSizeLimit mutates MaxInputSize and cannot run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docxsign/internal/yamlutil"
)

type signatureSection struct {
	Link string `yaml:"link"`
	UUID string `yaml:"uuid"`
}

type testConfig struct {
	Input     string           `yaml:"input"`
	DPI       int              `yaml:"dpi"`
	Signature signatureSection `yaml:"signature"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML, rejecting unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		wantMsg string
		check   func(t *testing.T, v any)
	}{
		{
			name: "nested known fields",
			data: []byte("input: assets/file_in.docx\ndpi: 96\nsignature:\n  link: https://example.org/v/\n  uuid: ABC-123\n"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Input != "assets/file_in.docx" {
					t.Errorf("Input = %q, want %q", cfg.Input, "assets/file_in.docx")
				}
				if cfg.DPI != 96 {
					t.Errorf("DPI = %d, want 96", cfg.DPI)
				}
				if cfg.Signature.UUID != "ABC-123" {
					t.Errorf("Signature.UUID = %q, want %q", cfg.Signature.UUID, "ABC-123")
				}
			},
		},
		{
			name: "unicode content",
			data: []byte("signature:\n  uuid: Defensoria-Pública\n"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if got := v.(*testConfig).Signature.UUID; got != "Defensoria-Pública" {
					t.Errorf("Signature.UUID = %q", got)
				}
			},
		},
		{
			name:    "unknown nested field",
			data:    []byte("signature:\n  link: https://example.org/\n  hash: abc\n"),
			dest:    &testConfig{},
			wantMsg: "hash",
		},
		{
			name:    "invalid syntax",
			data:    []byte("input: [unclosed"),
			dest:    &testConfig{},
			wantMsg: "yamlutil:",
		},
		{name: "nil data", data: nil, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("dpi: 96"), dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.wantMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecodeFile - Reads and decodes a YAML file
// ---------------------------------------------------------------------------

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docxsign.yaml")
		if err := os.WriteFile(path, []byte("dpi: 144\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		var cfg testConfig
		if err := yamlutil.DecodeFile(path, &cfg); err != nil {
			t.Fatalf("DecodeFile() error = %v", err)
		}
		if cfg.DPI != 144 {
			t.Errorf("DPI = %d, want 144", cfg.DPI)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes config structs
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	in := testConfig{Input: "in.docx", DPI: 96, Signature: signatureSection{Link: "https://example.org/v/", UUID: "ABC-123"}}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{"input: in.docx", "dpi: 96", "signature:", "  uuid: ABC-123"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q, got:\n%s", want, data)
		}
	}

	var back testConfig
	if err := yamlutil.UnmarshalStrict(data, &back); err != nil {
		t.Fatalf("UnmarshalStrict(Marshal()) error = %v", err)
	}
	if back != in {
		t.Errorf("decoded = %+v, want %+v", back, in)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		data := []byte("input: " + strings.Repeat("x", 100))
		var cfg testConfig
		err := yamlutil.UnmarshalStrict(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("error = %v, want ErrInputTooLarge", err)
		}
		if !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error should contain max size, got: %s", err)
		}
	})

	t.Run("DecodeFile enforces limit", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		path := filepath.Join(t.TempDir(), "big.yaml")
		if err := os.WriteFile(path, []byte("input: "+strings.Repeat("x", 100)), 0o644); err != nil {
			t.Fatal(err)
		}
		var cfg testConfig
		if err := yamlutil.DecodeFile(path, &cfg); !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}
