package main

// Notes:
// - main itself (maxprocs setup, os.Exit) is not tested; runMain carries
//   all dispatch logic.
// - Signal handling is covered by signal.NotifyContext and not re-tested.

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"docxtable"}, ExitUsage, "", "Usage: docxtable"},
		{"unknown command", []string{"docxtable", "render"}, ExitUsage, "", "unknown command: render"},
		{"version", []string{"docxtable", "version"}, ExitSuccess, "docxtable dev", ""},
		{"help", []string{"docxtable", "help"}, ExitSuccess, "Commands:", ""},
		{"help convert", []string{"docxtable", "help", "convert"}, ExitSuccess, "--header-rows", ""},
		{"help batch", []string{"docxtable", "help", "batch"}, ExitSuccess, "--separate", ""},
		{"help unknown", []string{"docxtable", "help", "nope"}, ExitUsage, "", "Unknown command: nope"},
		{"convert without input", []string{"docxtable", "convert"}, ExitUsage, "", "no input specified"},
		{"convert bad flag", []string{"docxtable", "convert", "--bogus", "a.csv"}, ExitUsage, "", "invalid arguments"},
		{"convert -h", []string{"docxtable", "convert", "-h"}, ExitSuccess, "Usage: docxtable convert", ""},
		{"batch without manifest", []string{"docxtable", "batch"}, ExitUsage, "", "no manifest specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv("")
			code := runMain(context.Background(), tt.args, env)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_UnsupportedInputHint(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.pdf"), "%PDF")

	code := runMain(context.Background(), []string{"docxtable", "convert", filepath.Join(dir, "notes.pdf")}, env)
	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "hint: supported inputs") {
		t.Errorf("stderr = %q, want format hint", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Early flag scan for maxprocs logging
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"convert", "a.csv"}, false},
		{[]string{"convert", "-v", "a.csv"}, true},
		{[]string{"batch", "m.yaml", "--verbose"}, true},
		{[]string{"convert", "--", "-v"}, false},
	}
	for _, tt := range tests {
		if got := wantsVerbose(tt.args); got != tt.want {
			t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
