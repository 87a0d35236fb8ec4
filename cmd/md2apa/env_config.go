package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2apa/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "MD2APA_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // MD2APA_CONFIG: config file name or path
	Format      string        // MD2APA_FORMAT: output format
	Style       string        // MD2APA_STYLE: CSS style name or path
	Timeout     time.Duration // MD2APA_TIMEOUT: PDF generation timeout
	InputDir    string        // MD2APA_INPUT_DIR: default input directory
	OutputDir   string        // MD2APA_OUTPUT_DIR: default output directory
	Author      string        // MD2APA_AUTHOR: author name
	Institution string        // MD2APA_INSTITUTION: affiliation
	Date        string        // MD2APA_DATE: title page date
	Workers     int           // MD2APA_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2APA_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2APA_CONFIG":      true,
	"MD2APA_FORMAT":      true,
	"MD2APA_STYLE":       true,
	"MD2APA_TIMEOUT":     true,
	"MD2APA_INPUT_DIR":   true,
	"MD2APA_OUTPUT_DIR":  true,
	"MD2APA_AUTHOR":      true,
	"MD2APA_INSTITUTION": true,
	"MD2APA_DATE":        true,
	"MD2APA_WORKERS":     true,
	"MD2APA_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MD2APA_CONFIG"),
		Format:      os.Getenv("MD2APA_FORMAT"),
		Style:       os.Getenv("MD2APA_STYLE"),
		InputDir:    os.Getenv("MD2APA_INPUT_DIR"),
		OutputDir:   os.Getenv("MD2APA_OUTPUT_DIR"),
		Author:      os.Getenv("MD2APA_AUTHOR"),
		Institution: os.Getenv("MD2APA_INSTITUTION"),
		Date:        os.Getenv("MD2APA_DATE"),
	}

	if timeout := os.Getenv("MD2APA_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("MD2APA_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized MD2APA_*
// variable, e.g. MD2APA_AUTOR instead of MD2APA_AUTHOR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment.
// Precedence: CLI flags > env vars > config file > defaults. Flags are
// merged afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Output.Format, env.Format)
	set(&cfg.HTML.Style, env.Style)
	set(&cfg.Input.DefaultDir, env.InputDir)
	set(&cfg.Output.DefaultDir, env.OutputDir)
	set(&cfg.Author.Name, env.Author)
	set(&cfg.Author.Institution, env.Institution)
	set(&cfg.Document.Date, env.Date)
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
}
