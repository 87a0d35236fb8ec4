package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.md", sampleMarkdown)
	dirty := writeFile(t, dir, "drafts/dirty.md", "# T\n\n| a | b |\n|---|---|\n\nsee [x](y)\n")

	tests := []struct {
		name       string
		args       []string
		wantErr    error
		wantStdout []string
		wantStderr string
	}{
		{name: "clean file", args: []string{clean}, wantStderr: "0 finding(s) in 0 of 1 file(s)"},
		{
			name:    "dirty file",
			args:    []string{dirty},
			wantErr: ErrFindings,
			wantStdout: []string{
				dirty + ":3: tables render as plain paragraphs [table]",
				dirty + ":6: link syntax renders as text [link]",
			},
			wantStderr: "2 finding(s) in 1 of 1 file(s)",
		},
		{name: "directory", args: []string{dir}, wantErr: ErrFindings, wantStderr: "2 finding(s) in 1 of 2 file(s)"},
		{name: "quiet", args: []string{"-q", clean}},
		{name: "no args", args: nil, wantErr: errUsage},
		{name: "missing path", args: []string{filepath.Join(dir, "gone.md")}, wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			err := runCheck(tt.args, env)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("runCheck() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("runCheck() error = %v, want %v", err, tt.wantErr)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout = %q, want %q", stdout, want)
				}
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
			if tt.name == "quiet" && stderr.Len() != 0 {
				t.Errorf("quiet check wrote %q", stderr)
			}
		})
	}
}
