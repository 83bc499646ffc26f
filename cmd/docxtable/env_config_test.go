package main

// Notes:
// - These tests use t.Setenv and therefore cannot run in parallel.

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docxtable/internal/config"
	"github.com/alnah/go-docxtable/internal/docx"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("DOCXTABLE_CONFIG", "lab")
	t.Setenv("DOCXTABLE_FONT", "Arial")
	t.Setenv("DOCXTABLE_EAST_ASIA_FONT", "KaiTi")
	t.Setenv("DOCXTABLE_FONT_SIZE", "10.5")
	t.Setenv("DOCXTABLE_PAGE_SIZE", "letter")
	t.Setenv("DOCXTABLE_OUTPUT", "out.docx")
	t.Setenv("DOCXTABLE_WORKERS", "3")

	got := loadEnvConfig()
	want := envConfig{
		ConfigPath:   "lab",
		Font:         "Arial",
		EastAsiaFont: "KaiTi",
		FontSize:     10.5,
		PageSize:     "letter",
		Output:       "out.docx",
		Workers:      3,
	}
	if *got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
	}
}

func TestLoadEnvConfig_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("DOCXTABLE_FONT_SIZE", "large")
	t.Setenv("DOCXTABLE_WORKERS", "-2")

	got := loadEnvConfig()
	if got.FontSize != 0 || got.Workers != 0 {
		t.Errorf("FontSize = %v, Workers = %d, want zero", got.FontSize, got.Workers)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("DOCXTABLE_FONTSIZE", "12")
	t.Setenv("DOCXTABLE_FONT", "Arial")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)
	if !strings.Contains(buf.String(), "DOCXTABLE_FONTSIZE") {
		t.Errorf("warning = %q, want DOCXTABLE_FONTSIZE", buf.String())
	}
	if strings.Contains(buf.String(), "DOCXTABLE_FONT ") || strings.Contains(buf.String(), "DOCXTABLE_FONT=") {
		t.Errorf("known variable reported: %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence below the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	env := &envConfig{Font: "Arial", EastAsiaFont: "KaiTi", FontSize: 9, PageSize: "legal", Output: "env.docx"}

	t.Run("fills empty fields", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)
		if cfg.Style.Font != "Arial" || cfg.Style.EastAsiaFont != "KaiTi" || cfg.Style.FontSize != 9 ||
			cfg.Style.Page.Size != "legal" || cfg.Output.Path != "env.docx" {
			t.Errorf("config = %+v", cfg)
		}
	})

	t.Run("config file wins", func(t *testing.T) {
		cfg := &config.Config{
			Style:  config.StyleConfig{Font: "Calibri", FontSize: 11, Page: config.PageConfig{Size: "a4"}},
			Output: config.OutputConfig{Path: "cfg.docx"},
		}
		applyEnvConfig(env, cfg)
		if cfg.Style.Font != "Calibri" || cfg.Style.FontSize != 11 || cfg.Style.Page.Size != "a4" || cfg.Output.Path != "cfg.docx" {
			t.Errorf("config file values overwritten: %+v", cfg)
		}
		if cfg.Style.EastAsiaFont != "KaiTi" {
			t.Errorf("EastAsiaFont = %q, want env value", cfg.Style.EastAsiaFont)
		}
	})
}

func TestRunConvert_EnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "env.docx")
	t.Setenv("DOCXTABLE_FONT", "Arial")
	t.Setenv("DOCXTABLE_OUTPUT", out)

	input := writeFile(t, filepath.Join(dir, "data.csv"), sampleCSV)
	env, _, _ := testEnv("")

	run := func(args ...string) string {
		t.Helper()
		flags, positional, err := parseConvertFlags(append([]string{input}, args...), env.Stdout)
		if err != nil {
			t.Fatal(err)
		}
		if err := runConvert(context.Background(), positional, flags, env, loadEnvConfig()); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		pkg, err := docx.Open(out)
		if err != nil {
			t.Fatalf("env output not written: %v", err)
		}
		body, _ := pkg.Part(docx.DocumentPart)
		return string(body)
	}

	if body := run(); !strings.Contains(body, `w:ascii="Arial"`) {
		t.Error("DOCXTABLE_FONT not applied")
	}
	if body := run("--font", "Calibri", "--mode", "overwrite"); !strings.Contains(body, `w:ascii="Calibri"`) || strings.Contains(body, `w:ascii="Arial"`) {
		t.Error("--font should override DOCXTABLE_FONT")
	}
}
