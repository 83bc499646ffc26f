package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-docxtable/internal/config"
)

// envConfig holds configuration from DOCXTABLE_* environment variables.
type envConfig struct {
	ConfigPath   string  // DOCXTABLE_CONFIG: config file name or path
	Font         string  // DOCXTABLE_FONT: Latin font
	EastAsiaFont string  // DOCXTABLE_EAST_ASIA_FONT: CJK font
	FontSize     float64 // DOCXTABLE_FONT_SIZE: points
	PageSize     string  // DOCXTABLE_PAGE_SIZE: a4, letter, legal
	Output       string  // DOCXTABLE_OUTPUT: default output path
	Workers      int     // DOCXTABLE_WORKERS: parallel workers
}

// knownEnvVars lists valid DOCXTABLE_* environment variables.
var knownEnvVars = map[string]bool{
	"DOCXTABLE_CONFIG":         true,
	"DOCXTABLE_FONT":           true,
	"DOCXTABLE_EAST_ASIA_FONT": true,
	"DOCXTABLE_FONT_SIZE":      true,
	"DOCXTABLE_PAGE_SIZE":      true,
	"DOCXTABLE_OUTPUT":         true,
	"DOCXTABLE_WORKERS":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Numbers that do not parse or are not positive are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("DOCXTABLE_CONFIG"),
		Font:         os.Getenv("DOCXTABLE_FONT"),
		EastAsiaFont: os.Getenv("DOCXTABLE_EAST_ASIA_FONT"),
		PageSize:     os.Getenv("DOCXTABLE_PAGE_SIZE"),
		Output:       os.Getenv("DOCXTABLE_OUTPUT"),
	}

	if size := os.Getenv("DOCXTABLE_FONT_SIZE"); size != "" {
		if f, err := strconv.ParseFloat(size, 64); err == nil && f > 0 {
			cfg.FontSize = f
		}
	}
	if workers := os.Getenv("DOCXTABLE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized DOCXTABLE_*
// variable, e.g. DOCXTABLE_FONTSIZE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "DOCXTABLE_") {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config fields that the config file left empty.
// Flags are merged afterwards, giving flags > env > config > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Font != "" && cfg.Style.Font == "" {
		cfg.Style.Font = env.Font
	}
	if env.EastAsiaFont != "" && cfg.Style.EastAsiaFont == "" {
		cfg.Style.EastAsiaFont = env.EastAsiaFont
	}
	if env.FontSize > 0 && cfg.Style.FontSize == 0 {
		cfg.Style.FontSize = env.FontSize
	}
	if env.PageSize != "" && cfg.Style.Page.Size == "" {
		cfg.Style.Page.Size = env.PageSize
	}
	if env.Output != "" && cfg.Output.Path == "" {
		cfg.Output.Path = env.Output
	}
}
