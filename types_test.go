package docxsign

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestParams_Validate
// ---------------------------------------------------------------------------

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"https link", Params{Link: "https://example.org/v/", UUID: "X"}, nil},
		{"http link with query", Params{Link: "http://example.org/check?doc=1", UUID: "X"}, nil},
		{"empty link", Params{UUID: "X"}, ErrInvalidLink},
		{"relative link", Params{Link: "/validate", UUID: "X"}, ErrInvalidLink},
		{"ftp link", Params{Link: "ftp://example.org/", UUID: "X"}, ErrInvalidLink},
		{"scheme without host", Params{Link: "https:///path", UUID: "X"}, ErrInvalidLink},
		{"unparseable link", Params{Link: "https://exa mple.org/%zz", UUID: "X"}, ErrInvalidLink},
		{"empty uuid", Params{Link: "https://example.org/"}, ErrEmptyUUID},
		{"whitespace uuid", Params{Link: "https://example.org/", UUID: " \t"}, ErrEmptyUUID},
		{"auto uuid", Params{Link: "https://example.org/", UUID: UUIDAuto}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParams_ValidationURL
// ---------------------------------------------------------------------------

func TestParams_ValidationURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"trailing slash appends uuid", Params{Link: "https://example.org/v/", UUID: "ABC-123"}, "https://example.org/v/ABC-123"},
		{"uuid is path escaped", Params{Link: "https://example.org/v/", UUID: "A B/C"}, "https://example.org/v/A%20B%2FC"},
		{"no trailing slash keeps link", Params{Link: "https://example.org/check", UUID: "ABC"}, "https://example.org/check"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.params.ValidationURL(); got != tt.want {
				t.Errorf("ValidationURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParams_resolve
// ---------------------------------------------------------------------------

func TestParams_resolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name     string
		params   Params
		wantUUID string
		wantDate string
		wantErr  error
	}{
		{"literal values", Params{UUID: " ABC ", Date: "1 May 2025"}, "ABC", "1 May 2025", nil},
		{"auto date", Params{UUID: "X", Date: "auto"}, "X", "2025-12-31", nil},
		{"stamp preset", Params{UUID: "X", Date: "auto:stamp"}, "X", "31/12/2025 23:59", nil},
		{"empty date", Params{UUID: "X"}, "X", "", nil},
		{"bad auto syntax", Params{UUID: "X", Date: "auto-iso"}, "", "", ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.params.resolve(now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve() unexpected error: %v", err)
			}
			if got.UUID != tt.wantUUID {
				t.Errorf("UUID = %q, want %q", got.UUID, tt.wantUUID)
			}
			if got.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", got.Date, tt.wantDate)
			}
		})
	}
}

func TestParams_resolve_AutoUUIDIsFresh(t *testing.T) {
	t.Parallel()

	p := Params{Link: "https://example.org/", UUID: "AUTO"}
	a, err := p.resolve(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.resolve(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if a.UUID == b.UUID {
		t.Errorf("two auto UUIDs are equal: %q", a.UUID)
	}
	if a.UUID == "AUTO" {
		t.Error("auto UUID was not expanded")
	}
}

// ---------------------------------------------------------------------------
// TestInput_Validate
// ---------------------------------------------------------------------------

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	params := Params{Link: "https://example.org/", UUID: "X"}
	bad := A4
	bad.PageWidth = 0

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"valid", Input{Document: []byte("PK"), Params: params}, nil},
		{"valid with profile", Input{Document: []byte("PK"), Profile: &Letter, Params: params}, nil},
		{"empty document", Input{Params: params}, ErrEmptyDocument},
		{"invalid profile", Input{Document: []byte("PK"), Profile: &bad, Params: params}, ErrInvalidProfile},
		{"invalid params", Input{Document: []byte("PK")}, ErrInvalidLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
