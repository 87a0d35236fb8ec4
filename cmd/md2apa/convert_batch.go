package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Findings   []md2apa.Finding
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Each worker holds one converter for its whole run. Files still queued
// when ctx is canceled are reported with ctx.Err().
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark this worker's jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result. The output
// is written atomically, so a failure never leaves a partial file.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	res, err := conv.Convert(ctx, buildInput(params, string(content), f.InputPath))
	if err != nil {
		return fail(err)
	}
	result.Findings = res.Findings

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, res.Data, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Findings  int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Findings += len(r.Findings)
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided
// writers and returns the number of failures. Lint findings are printed
// as warnings in check format unless quiet.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, errorHint(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		for _, f := range r.Findings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", formatFinding(r.InputPath, f))
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	if !quiet && summary.Findings > 0 {
		fmt.Fprintf(env.Stderr, "%d unsupported markdown construct(s) rendered as plain text\n", summary.Findings)
	}

	return summary.Failed
}

// formatFinding renders a finding as "path:line: message [rule]".
func formatFinding(path string, f md2apa.Finding) string {
	return fmt.Sprintf("%s:%d: %s [%s]", path, f.Line, f.Message, f.Rule)
}
