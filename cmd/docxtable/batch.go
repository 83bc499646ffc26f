package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	docxtable "github.com/alnah/go-docxtable"
	"github.com/alnah/go-docxtable/internal/config"
	"github.com/alnah/go-docxtable/internal/fileutil"
)

// Sentinel errors for the batch command.
var (
	ErrNoManifest   = errors.New("no manifest specified")
	ErrTablesFailed = errors.New("tables failed")
)

// TableWriter is the library surface the batch command drives.
type TableWriter interface {
	WriteItem(ctx context.Context, item docxtable.BatchItem, caption, outputPath string, opts docxtable.BatchOptions) error
	WriteTables(ctx context.Context, items []docxtable.BatchItem, captions []string, outputPath string, opts docxtable.BatchOptions) ([]docxtable.BatchResult, error)
}

// Compile-time interface implementation check.
var _ TableWriter = (*docxtable.Converter)(nil)

// runBatchCmd parses batch arguments and runs the manifest.
func runBatchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBatchFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env.Stderr)
	return runBatch(ctx, positional, flags, env, loadEnvConfig())
}

// runBatch writes every table of a manifest.
// Style precedence: flags > manifest > env > config file > defaults.
func runBatch(ctx context.Context, positional []string, flags *batchFlags, env *Environment, envCfg *envConfig) error {
	manifestPath, err := resolveManifest(positional)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfiguration(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	m, err := config.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	overlayStyle(&cfg.Style, m.Style)
	mergeStyleFlags(&flags.style, &flags.page, &cfg.Style)
	if err := cfg.Validate(); err != nil {
		return err
	}

	style := buildStyle(cfg.Style)
	if err := style.Validate(); err != nil {
		return err
	}
	items, err := buildBatchItems(m, cfg)
	if err != nil {
		return err
	}

	outputPath := firstNonEmpty(flags.output.path, m.Output, cfg.Output.Path, fileutil.ReplaceExt(manifestPath, ".docx"))
	opts := docxtable.BatchOptions{
		Separate: flags.separate || m.Separate || cfg.Output.Separate,
		Mode:     resolveMode(flags.output.mode, m.Mode, cfg.Output.Mode),
		Style:    style,
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	conv, err := newConverter(env, logger, firstNonEmpty(flags.output.assetPath, cfg.Assets.BasePath))
	if err != nil {
		return err
	}

	workers := resolvePoolSize(flags.workers, envCfg.Workers)
	logger.Debug().Int("tables", len(items)).Int("workers", workers).Bool("separate", opts.Separate).Msg("starting batch")

	start := env.Now()
	results, err := writeBatch(ctx, conv, items, m.Captions(), outputPath, opts, workers)
	if results == nil {
		return err
	}

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env, env.Now().Sub(start))
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTablesFailed, failed, len(results))
	}
	return nil
}

// resolveManifest returns the single positional argument.
func resolveManifest(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoManifest
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: batch takes one manifest, got %d", ErrTooManyInputs, len(args))
	}
}

// buildBatchItems turns manifest entries into batch items. Each entry's
// input settings are layered over the manifest's, then the config file's.
func buildBatchItems(m *config.Manifest, cfg *config.Config) ([]docxtable.BatchItem, error) {
	items := make([]docxtable.BatchItem, len(m.Tables))
	for i, t := range m.Tables {
		in := cfg.Input
		overlayInput(&in, m.EffectiveInput(i))
		opts, err := buildLoadOptions(in)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i+1, err)
		}
		items[i] = docxtable.BatchItem{
			Path:         t.Path,
			Text:         t.Text,
			Description:  t.Description,
			HeaderRows:   opts.HeaderRows,
			Sheet:        opts.Sheet,
			Delimiter:    opts.Delimiter,
			Encoding:     opts.Encoding,
			IncludeIndex: t.IncludeIndex || cfg.Output.IncludeIndex,
			IndexColumn:  opts.IndexColumn,
		}
	}
	return items, nil
}

// overlayInput copies every set field of over onto base.
func overlayInput(base *config.InputConfig, over config.InputConfig) {
	if over.HeaderRows != nil {
		base.HeaderRows = over.HeaderRows
	}
	setString(&base.Sheet, over.Sheet)
	setString(&base.Delimiter, over.Delimiter)
	setString(&base.Encoding, over.Encoding)
	if over.IndexColumn != 0 {
		base.IndexColumn = over.IndexColumn
	}
}

// writeBatch writes a batch. Separate documents are spread over workers;
// a combined document is built by one goroutine since every table goes
// into the same file.
func writeBatch(ctx context.Context, w TableWriter, items []docxtable.BatchItem, captions []string, outputPath string, opts docxtable.BatchOptions, workers int) ([]docxtable.BatchResult, error) {
	if !opts.Separate || workers <= 1 {
		return w.WriteTables(ctx, items, captions, outputPath, opts)
	}

	names, err := docxtable.ValidateBatch(items, captions, outputPath, opts)
	if err != nil {
		return nil, err
	}
	results := make([]docxtable.BatchResult, len(items))
	for i := range items {
		results[i] = docxtable.BatchResult{
			Index:   i,
			Caption: names[i],
			Output:  docxtable.SeparatePath(outputPath, i+1),
		}
	}

	errs := fanOut(ctx, workers, len(items), func(ctx context.Context, i int) error {
		return w.WriteItem(ctx, items[i], names[i], results[i].Output, opts)
	})
	for i, err := range errs {
		results[i].Err = err
	}
	return results, ctx.Err()
}

// printResults reports each table and returns the number that failed.
// A combined document is announced once.
func printResults(results []docxtable.BatchResult, quiet, verbose bool, env *Environment, elapsed time.Duration) int {
	failed := 0
	announced := make(map[string]bool)
	for _, r := range results {
		label := r.Caption
		if label == "" {
			label = docxtable.DefaultCaption(r.Index + 1)
		}

		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", label, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s\n", label, r.Output)
			continue
		}
		if !announced[r.Output] {
			announced[r.Output] = true
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", len(results)-failed, failed)
		if verbose {
			fmt.Fprintf(env.Stdout, " (%v)", elapsed.Round(time.Millisecond))
		}
		fmt.Fprintln(env.Stdout)
	}
	return failed
}
