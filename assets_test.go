package md2apa

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestStyles(t *testing.T) {
	t.Parallel()

	styles := Styles()
	if !slices.Contains(styles, DefaultStyle) {
		t.Errorf("Styles() = %v, missing %q", styles, DefaultStyle)
	}
	if !slices.IsSorted(styles) {
		t.Errorf("Styles() = %v, want sorted", styles)
	}
}

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "thesis.css"), []byte("h2 { color: navy; }"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func() (string, error)
		wantErr error
	}{
		{name: "custom style", load: func() (string, error) { return loader.LoadStyle("thesis") }},
		{name: "embedded fallback style", load: func() (string, error) { return loader.LoadStyle(DefaultStyle) }},
		{name: "embedded fallback template", load: func() (string, error) { return loader.LoadTemplate(DefaultTemplate) }},
		{name: "missing style", load: func() (string, error) { return loader.LoadStyle("missing") }, wantErr: ErrStyleNotFound},
		{name: "traversal name", load: func() (string, error) { return loader.LoadStyle("../secret") }, wantErr: ErrStyleNotFound},
		{name: "missing template", load: func() (string, error) { return loader.LoadTemplate("missing") }, wantErr: ErrTemplateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := tt.load()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || content == "" {
				t.Errorf("load = %d bytes, %v", len(content), err)
			}
		})
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestConvertAssetError_KeepsMessage(t *testing.T) {
	t.Parallel()

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) != nil")
	}

	other := errors.New("disk on fire")
	if got := convertAssetError(other); got != other {
		t.Errorf("convertAssetError() = %v, want unchanged", got)
	}
}
