package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2apa/internal/config"
)

func TestRunConfig(t *testing.T) {
	t.Parallel()

	t.Run("print defaults", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv()
		if err := runConfig(nil, env); err != nil {
			t.Fatalf("runConfig() error = %v", err)
		}
		for _, want := range []string{"output:", "format: docx", "author:", "abstract:"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout missing %q:\n%s", want, stdout)
			}
		}
	})

	t.Run("init writes a loadable file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "thesis.yaml")
		env, stdout, _ := newTestEnv()
		if err := runConfig([]string{"init", path}, env); err != nil {
			t.Fatalf("runConfig(init) error = %v", err)
		}
		if !strings.Contains(stdout.String(), "Created "+path) {
			t.Errorf("stdout = %q", stdout)
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Format != "docx" {
			t.Errorf("Output.Format = %q, want docx", cfg.Output.Format)
		}
	})

	t.Run("init refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "mine.yaml", "author:\n  name: Ada\n")
		env, _, _ := newTestEnv()
		if err := runConfig([]string{"init", path}, env); !errors.Is(err, ErrConfigExists) {
			t.Errorf("error = %v, want ErrConfigExists", err)
		}
		if got := readFile(t, path); got != "author:\n  name: Ada\n" {
			t.Errorf("file overwritten: %q", got)
		}
	})

	t.Run("bad usage", func(t *testing.T) {
		t.Parallel()

		for _, args := range [][]string{{"show"}, {"init", "a", "b"}} {
			env, _, stderr := newTestEnv()
			if err := runConfig(args, env); !errors.Is(err, errUsage) {
				t.Errorf("runConfig(%v) error = %v, want errUsage", args, err)
			}
			if !strings.Contains(stderr.String(), "Usage: md2apa config") {
				t.Errorf("stderr = %q, want usage", stderr)
			}
		}
	})
}
