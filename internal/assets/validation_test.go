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
		{name: "simple name", input: "apa"},
		{name: "name with hyphen", input: "apa-student"},
		{name: "name with underscore", input: "apa_student"},
		{name: "name with numbers", input: "apa7"},
		{name: "mixed case", input: "ApaStyle"},

		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "path/to/style", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "path\\to\\style", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "double parent traversal", input: "../../etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "dot in name", input: "style.css", wantErr: ErrInvalidAssetName},
		{name: "hidden file", input: ".hidden", wantErr: ErrInvalidAssetName},
		{name: "absolute path windows", input: "C:\\Windows\\System32", wantErr: ErrInvalidAssetName},
		{name: "two dots", input: "..", wantErr: ErrInvalidAssetName},
		{name: "space", input: "apa student", wantErr: ErrInvalidAssetName},
		{name: "leading hyphen", input: "-apa", wantErr: ErrInvalidAssetName},
		{name: "at length limit", input: strings.Repeat("a", MaxAssetNameLength)},
		{name: "over length limit", input: strings.Repeat("a", MaxAssetNameLength+1), wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
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
		t.Errorf("ValidateAssetName() error = %v, want message naming the input", err)
	}
}
