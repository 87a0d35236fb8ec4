// Package fileutil provides file and path helpers shared by the converter
// and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

const tempPrefix = "md2apa-"

// WriteTempFile creates a temporary file holding content. The caller must
// call cleanup once the file is no longer needed.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", tempPrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	if err := finish(f, []byte(content)); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial document.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()

	if err := finish(f, data); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", filepath.Base(path), err)
	}
	return nil
}

func finish(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	return nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ReplaceExt swaps the extension of path for ext, which includes its dot.
//
//	ReplaceExt("notes/paper.md", ".docx") // "notes/paper.docx"
//	ReplaceExt("README", ".txt")          // "README.txt"
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath reports whether s looks like a path rather than an asset name.
// Any string containing / or \ is a path: "./apa.css" and "sub/dir" are
// paths, "apa" and "my-style" are names.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
