package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	docxtable "github.com/alnah/go-docxtable"
	"github.com/alnah/go-docxtable/internal/fileutil"
)

// stdinInput is the input argument that reads pasted text from stdin.
const stdinInput = "-"

// stdinOutputName names the document written for stdin input.
const stdinOutputName = "table.docx"

// Sentinel errors for the convert command.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrTooManyInputs = errors.New("too many arguments")
	ErrReadStdin     = errors.New("failed to read standard input")
)

// runConvertCmd parses convert arguments and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env.Stderr)
	return runConvert(ctx, positional, flags, env, loadEnvConfig())
}

// runConvert writes one table from a file or stdin into a document.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment, envCfg *envConfig) error {
	input, err := resolveInput(positional)
	if err != nil {
		return err
	}

	cfg, err := loadConfiguration(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeStyleFlags(&flags.style, &flags.page, &cfg.Style)
	mergeInputFlags(&flags.input, &cfg.Input)
	if flags.table.includeIndex {
		cfg.Output.IncludeIndex = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	style := buildStyle(cfg.Style)
	if err := style.Validate(); err != nil {
		return err
	}
	loadOpts, err := buildLoadOptions(cfg.Input)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	conv, err := newConverter(env, logger, firstNonEmpty(flags.output.assetPath, cfg.Assets.BasePath))
	if err != nil {
		return err
	}

	start := env.Now()
	ds, err := loadInput(input, loadOpts, env.Stdin)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(input, flags.output.path, cfg.Output.Path)
	spec := docxtable.TableSpec{
		Caption:      flags.table.caption,
		Description:  flags.table.description,
		Headers:      flags.table.headers,
		IncludeIndex: cfg.Output.IncludeIndex,
		Mode:         resolveMode(flags.output.mode, cfg.Output.Mode),
		Style:        style,
	}
	if err := conv.WriteTable(ctx, ds, outputPath, spec); err != nil {
		return err
	}

	switch {
	case flags.common.quiet:
	case flags.common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%d rows, %v)\n", input, outputPath, len(ds.Rows), env.Now().Sub(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
	}
	return nil
}

// resolveInput returns the single positional argument.
func resolveInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: convert takes one input, got %d", ErrTooManyInputs, len(args))
	}
}

// loadInput reads a file, or stdin when input is "-".
func loadInput(input string, opts docxtable.LoadOptions, stdin io.Reader) (*docxtable.Dataset, error) {
	if input != stdinInput {
		return docxtable.ReadTableFromFile(input, opts)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadStdin, err)
	}
	return docxtable.ParseClipboardText(string(data), opts)
}

// resolveOutputPath picks the document path. Priority: flag > config/env >
// input name with .docx. A directory receives the default file name.
func resolveOutputPath(input, flagOutput, cfgOutput string) string {
	name := stdinOutputName
	if input != stdinInput {
		name = fileutil.ReplaceExt(filepath.Base(input), ".docx")
	}

	out := firstNonEmpty(flagOutput, cfgOutput)
	if out == "" {
		if input == stdinInput {
			return name
		}
		return fileutil.ReplaceExt(input, ".docx")
	}
	if isDirTarget(out) {
		return filepath.Join(out, name)
	}
	return out
}

// isDirTarget reports whether path names a directory, existing or written
// with a trailing separator.
func isDirTarget(path string) bool {
	return fileutil.IsDir(path) ||
		strings.HasSuffix(path, "/") ||
		strings.HasSuffix(path, string(os.PathSeparator))
}
