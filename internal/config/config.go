// Package config loads md2apa YAML configuration files. Every field is
// optional: an empty value means the CLI flag or built-in default applies.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2apa/internal/dateutil"
	"github.com/alnah/go-md2apa/internal/fileutil"
	"github.com/alnah/go-md2apa/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DirName is the directory under os.UserConfigDir searched for named configs.
const DirName = "go-md2apa"

// Field length limits.
const (
	MaxNameLength        = 100
	MaxInstitutionLength = 200
	MaxTitleLength       = 300
	MaxDateLength        = 50
	MaxAbstractLength    = 5000
	MaxKeywords          = 10
	MaxKeywordLength     = 50
	MaxStyleLength       = 100
	MaxPathLength        = 4096
)

// Formats lists the accepted output.format values.
var Formats = []string{"docx", "html", "pdf", "txt"}

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Author   AuthorConfig   `yaml:"author"`
	Document DocumentConfig `yaml:"document"`
	Abstract AbstractConfig `yaml:"abstract"`
	HTML     HTMLConfig     `yaml:"html"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
}

type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	Format     string `yaml:"format"`     // docx, html, pdf or txt (default docx)
}

// AuthorConfig fills the title page byline.
type AuthorConfig struct {
	Name        string `yaml:"name"`
	Institution string `yaml:"institution"`
}

// DocumentConfig overrides values otherwise taken from the markdown.
type DocumentConfig struct {
	Title string `yaml:"title"` // empty = first "# " heading, then file name
	Date  string `yaml:"date"`  // literal text or "auto[:FORMAT]"
}

// AbstractConfig controls the abstract page. Text and File are exclusive.
type AbstractConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Text     string   `yaml:"text"`
	File     string   `yaml:"file"`
	Keywords []string `yaml:"keywords"`
}

type HTMLConfig struct {
	Style     string `yaml:"style"`     // embedded style name or CSS file path
	Highlight string `yaml:"highlight"` // chroma style for code blocks
}

type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

type PDFConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s"
}

// TimeoutDuration parses Timeout. An empty value returns zero.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidValue, p.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, p.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and enumerated values. LoadConfig calls it;
// callers building a Config by hand should too.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"author.name", c.Author.Name, MaxNameLength},
		{"author.institution", c.Author.Institution, MaxInstitutionLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"abstract.text", c.Abstract.Text, MaxAbstractLength},
		{"abstract.file", c.Abstract.File, MaxPathLength},
		{"html.style", c.HTML.Style, MaxStyleLength},
		{"html.highlight", c.HTML.Highlight, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if f := c.Output.Format; f != "" && !slices.Contains(Formats, strings.ToLower(f)) {
		return fmt.Errorf("%w: output.format %q (must be one of %s)", ErrInvalidValue, f, strings.Join(Formats, ", "))
	}

	// Resolving against the zero time only checks the auto syntax.
	if _, err := dateutil.ResolveDate(c.Document.Date, time.Time{}); err != nil {
		return fmt.Errorf("%w: document.date: %v", ErrInvalidValue, err)
	}

	if c.Abstract.Text != "" && c.Abstract.File != "" {
		return fmt.Errorf("%w: abstract.text and abstract.file are mutually exclusive", ErrInvalidValue)
	}
	if len(c.Abstract.Keywords) > MaxKeywords {
		return fmt.Errorf("%w: abstract.keywords (%d entries, max %d)", ErrFieldTooLong, len(c.Abstract.Keywords), MaxKeywords)
	}
	for i, kw := range c.Abstract.Keywords {
		if err := validateFieldLength(fmt.Sprintf("abstract.keywords[%d]", i), kw, MaxKeywordLength); err != nil {
			return err
		}
	}

	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "docx"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a path; anything else is
// a name searched as NAME.yaml and NAME.yml in the working directory, then
// in os.UserConfigDir()/go-md2apa. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the candidate files for a config name in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, DirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
