package md2apa

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatDOCX},
		{in: "docx", want: FormatDOCX},
		{in: "HTML", want: FormatHTML},
		{in: "Pdf", want: FormatPDF},
		{in: "txt", want: FormatText},
		{in: "text", wantErr: true},
		{in: "odt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidFormat", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormat_Extension(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		if ext := f.Extension(); ext != "."+string(f) {
			t.Errorf("%s.Extension() = %q", f, ext)
		}
	}
	if Formats()[0] != FormatDOCX {
		t.Errorf("Formats()[0] = %q, want docx first", Formats()[0])
	}
}

func TestMetadata_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		meta    Metadata
		wantErr error
	}{
		{name: "valid", meta: Metadata{Title: "T", Author: "A"}},
		{name: "multibyte title at limit", meta: Metadata{Title: strings.Repeat("é", MaxTitleLength), Author: "A"}},
		{name: "empty title", meta: Metadata{Author: "A"}, wantErr: ErrMissingTitle},
		{name: "blank author", meta: Metadata{Title: "T", Author: "\t "}, wantErr: ErrMissingAuthor},
		{name: "title too long", meta: Metadata{Title: strings.Repeat("x", MaxTitleLength+1), Author: "A"}, wantErr: ErrFieldTooLong},
		{name: "author too long", meta: Metadata{Title: "T", Author: strings.Repeat("x", MaxNameLength+1)}, wantErr: ErrFieldTooLong},
		{name: "institution too long", meta: Metadata{Title: "T", Author: "A", Institution: strings.Repeat("x", MaxInstitutionLength+1)}, wantErr: ErrFieldTooLong},
		{name: "date too long", meta: Metadata{Title: "T", Author: "A", Date: strings.Repeat("x", MaxDateLength+1)}, wantErr: ErrFieldTooLong},
		{name: "too many keywords", meta: Metadata{Title: "T", Author: "A", Keywords: make([]string, MaxKeywords+1)}, wantErr: ErrFieldTooLong},
		{name: "keyword too long", meta: Metadata{Title: "T", Author: "A", Keywords: []string{strings.Repeat("k", MaxKeywordLength+1)}}, wantErr: ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.meta.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAbstract_Validate(t *testing.T) {
	t.Parallel()

	var none *Abstract
	if err := none.Validate(); err != nil {
		t.Errorf("nil Validate() error = %v", err)
	}
	if err := (&Abstract{}).Validate(); err != nil {
		t.Errorf("empty Validate() error = %v", err)
	}
	long := &Abstract{Text: strings.Repeat("a", MaxAbstractLength+1)}
	if err := long.Validate(); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("long Validate() error = %v, want ErrFieldTooLong", err)
	}
}

func TestFinding_String(t *testing.T) {
	t.Parallel()

	f := Finding{Line: 12, Rule: "image", Message: "images are not embedded"}
	if got, want := f.String(), "12: images are not embedded [image]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
