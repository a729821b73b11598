package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "default"},
		{name: "hyphen", input: "sign-banner"},
		{name: "underscore", input: "sign_banner"},
		{name: "digits and case", input: "Banner2"},
		{name: "max length", input: strings.Repeat("a", MaxAssetNameLength)},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "too long", input: strings.Repeat("a", MaxAssetNameLength+1), wantErr: ErrInvalidAssetName},
		{name: "slash traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "backslash traversal", input: "..\\secret", wantErr: ErrInvalidAssetName},
		{name: "absolute path", input: "/etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "default.html", wantErr: ErrInvalidAssetName},
		{name: "space", input: "sign banner", wantErr: ErrInvalidAssetName},
		{name: "null byte", input: "sign\x00", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetName_MessageNamesInput(t *testing.T) {
	t.Parallel()

	err := ValidateAssetName("../evil")
	if err == nil || !strings.Contains(err.Error(), "../evil") {
		t.Errorf("error = %v, want it to quote the name", err)
	}
}
