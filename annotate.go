package docxtable

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Units whose trailing integer is read as an exponent (m2, s-1, mg L-1).
// Longer names come first so "mmol" is not read as "m" + "mol".
const unitPattern = `mmol|kPa|min|mol|µm|µg|μm|μg|mL|cm|mm|km|nm|mg|kg|Pa|m|g|L|s|h|J|W|K`

// unitBefore matches text ending in a unit, with or without its exponent,
// such as the "mg" of "mg L-1" or the "cm3" of "cm3 s-1".
var unitBefore = regexp.MustCompile(`(?:^|[^\p{L}_])(?:` + unitPattern + `)(?:[+\-−]?\d+)?$`)

// specialPattern alternatives, in priority order:
//
//	1 $_{x}$   2 $^{x}$   3 _{x}   4 ^{x}   5 ^-3
//	6 boundary before a unit, 7 unit, 8 its exponent
var specialPattern = regexp.MustCompile(
	`\$_\{([^{}]*)\}\$` +
		`|\$\^\{([^{}]*)\}\$` +
		`|_\{([^{}]*)\}` +
		`|\^\{([^{}]*)\}` +
		`|\^([+\-−]?\d+)` +
		`|(^|[^\p{L}_])(` + unitPattern + `)([+\-−]?\d+)\b`,
)

// Annotate splits cell text into runs, marking superscripts and subscripts.
//
// Recognized forms are $_{x}$ and _{x} (subscript), $^{x}$ and ^{x}
// (superscript), a caret before a signed integer (10^5, 10^-3), and a known
// unit directly followed by a signed integer exponent (cm3, 5 m2, mg L-1).
// Single-letter units need a number or another unit in front, so labels
// such as W1 or "Plot m3" stay as they are.
// Markup characters are dropped; everything else is kept verbatim.
// Adjacent runs with the same treatment are merged and empty runs are never
// returned. When disabled the whole text is one normal run.
func Annotate(text string, enabled bool) []Run {
	if text == "" {
		return nil
	}
	if !enabled {
		return []Run{{Text: text}}
	}

	var runs []Run
	pos := 0
	for _, m := range specialPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[14] >= 0 {
			if !unitContext(text[:m[14]], text[m[14]:m[15]]) {
				continue
			}
			// Unit exponent: the boundary character and unit stay normal.
			runs = appendRun(runs, Run{Text: text[pos:m[16]]})
			runs = appendRun(runs, Run{Text: text[m[16]:m[17]], Script: ScriptSuperscript})
			pos = m[1]
			continue
		}

		runs = appendRun(runs, Run{Text: text[pos:m[0]]})
		for group, script := range []Script{
			1: ScriptSubscript,
			2: ScriptSuperscript,
			3: ScriptSubscript,
			4: ScriptSuperscript,
			5: ScriptSuperscript,
		} {
			if group == 0 || m[2*group] < 0 {
				continue
			}
			runs = appendRun(runs, Run{Text: text[m[2*group]:m[2*group+1]], Script: script})
			break
		}
		pos = m[1]
	}
	return appendRun(runs, Run{Text: text[pos:]})
}

// unitContext reports whether a unit found after before really is a unit.
// Multi-letter units always are. A single letter such as the W of "W1" or
// the m of "Plot m3" only counts after a number ("5 m2"), another unit
// ("mg L-1"), or an opening '(', '[' or '/' ("(m2)", "g/m2").
func unitContext(before, unit string) bool {
	if utf8.RuneCountInString(unit) > 1 {
		return true
	}
	if r, _ := utf8.DecodeLastRuneInString(before); strings.ContainsRune("([/·", r) {
		return true
	}
	trimmed := strings.TrimRight(before, " ")
	if trimmed == "" {
		return false
	}
	if r, _ := utf8.DecodeLastRuneInString(trimmed); unicode.IsDigit(r) {
		return true
	}
	return trimmed != before && unitBefore.MatchString(trimmed)
}

// appendRun adds r, merging it into the previous run when both are drawn
// the same way.
func appendRun(runs []Run, r Run) []Run {
	if r.Text == "" {
		return runs
	}
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if last.Script == r.Script && last.Bold == r.Bold && last.Italic == r.Italic {
			last.Text += r.Text
			return runs
		}
	}
	return append(runs, r)
}

