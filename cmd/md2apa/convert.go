package main

import (
	"context"
	"errors"
	"fmt"

	md2apa "github.com/alnah/go-md2apa"
	"github.com/alnah/go-md2apa/internal/config"
	"github.com/alnah/go-md2apa/internal/dateutil"
)

// Sentinel errors for CLI input resolution.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrConversionFailed = errors.New("conversion failed")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}

	// Precedence: flags > env > config file > defaults.
	applyEnvConfig(envCfg, cfg)
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	mergeMetadataFlags(&flags.meta, cfg)
	mergeAssetFlags(&flags.assets, cfg)
	if err := mergeAbstractFlags(&flags.abstract, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := buildParams(cfg, env, !flags.noLint)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	files, err := discoverFiles(inputPath, outputDir, params.format.Extension())
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	logger := env.logger(flags.common.verbose)
	size := min(md2apa.ResolvePoolSize(workers), len(files))
	logger.Debug("starting conversion", "files", len(files), "workers", size, "format", string(params.format))

	pool := env.NewPool(size, converterOptions(cfg, timeout, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", "error", err)
		}
	}()

	results := convertBatch(ctx, pool, files, params)
	return reportResults(results, flags.common, env)
}

// buildParams resolves the values shared by every file of a batch.
// The date is resolved once so a batch crossing midnight stays consistent.
func buildParams(cfg *config.Config, env *Environment, lint bool) (*conversionParams, error) {
	format, err := md2apa.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	date := cfg.Document.Date
	if date == "" {
		date = "auto"
	}
	if cfg.Document.Date, err = dateutil.ResolveDate(date, env.Now()); err != nil {
		return nil, fmt.Errorf("%w: %v", md2apa.ErrInvalidDate, err)
	}

	abstract, err := resolveAbstract(cfg)
	if err != nil {
		return nil, err
	}
	return &conversionParams{cfg: cfg, format: format, abstract: abstract, lint: lint}, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", errUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// reportResults prints results and turns failures into an error. A single
// failed file returns its own error so the exit code reflects the cause.
func reportResults(results []ConversionResult, flags commonFlags, env *Environment) error {
	if len(results) == 1 && results[0].Err != nil {
		return fmt.Errorf("%s: %w", results[0].InputPath, results[0].Err)
	}

	failed := printResultsWithWriter(results, flags.quiet, flags.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrConversionFailed, failed, len(results))
	}
	return nil
}
