// Package hints appends actionable advice to CLI error messages.
// Every hint has the form "\n  hint: <text>".
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2apa/internal/fileutil"
)

// configDirName is the per-user config directory under os.UserConfigDir.
const configDirName = "go-md2apa"

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect returns hints for a browser that failed to start
// during PDF export.
func ForBrowserConnect() string {
	var hints []string

	inCI := false
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			inCI = true
			break
		}
	}
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or pick --format docx, which needs no browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about the PDF timeout.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound suggests --config, or creating the first searched path
// that lives in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	marker := string(filepath.Separator) + configDirName + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the embedded styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForFormat lists the output formats.
func ForFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("supported formats: " + strings.Join(available, ", "))
}

// ForMissingMetadata explains how to supply a required title page field.
// flag is the CLI flag without dashes and key the config path.
func ForMissingMetadata(flag, key string) string {
	return format("pass --" + flag + " or set " + key + " in the config file")
}

// ForUnsupportedMarkdown points at the check command.
func ForUnsupportedMarkdown(path string) string {
	return format("run md2apa check " + path + " to list constructs rendered as plain text")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
