package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert. Directories are
// walked recursively and mirrored under outputDir. ext is the output
// extension including the dot.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", ext)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdownFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, ext)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the output path for a markdown file.
// An outputDir ending in ext names the output file itself.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if strings.EqualFold(filepath.Ext(outputDir), ext) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2apa.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2apa.MaxPoolSize)
	}
	return nil
}
