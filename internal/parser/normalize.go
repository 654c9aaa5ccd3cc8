package parser

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts lines to NFC, strips trailing whitespace and right-pads
// every line with spaces to the longest one, measured in runes.
func Normalize(lines []string) []string {
	out := make([]string, len(lines))
	longest := 0
	for i, line := range lines {
		out[i] = strings.TrimRightFunc(norm.NFC.String(line), unicode.IsSpace)
		longest = max(longest, utf8.RuneCountInString(out[i]))
	}
	for i, line := range out {
		if n := utf8.RuneCountInString(line); n < longest {
			out[i] = line + strings.Repeat(" ", longest-n)
		}
	}
	return out
}

// ValidateLines checks a raw block before it is normalized. All problems are
// reported; an empty result means the block is usable.
func ValidateLines(lines []string) []error {
	if len(lines) == 0 {
		return []error{ErrNoLines}
	}

	var errs []error
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			errs = append(errs, fmt.Errorf("%w: line %d", ErrBlankLine, i+1))
		}
	}

	symbol, ok := firstSymbol(lines)
	if !ok {
		return append(errs, ErrNoSymbol)
	}

	for i, line := range lines {
		var foreign []rune
		for _, r := range line {
			if r == symbol || unicode.IsSpace(r) {
				continue
			}
			if !slices.Contains(foreign, r) {
				foreign = append(foreign, r)
			}
		}
		if len(foreign) > 0 {
			errs = append(errs, fmt.Errorf("%w: line %d has %q, expected %q", ErrMixedSymbols, i+1, string(foreign), symbol))
		}
	}

	return errs
}

func firstSymbol(lines []string) (rune, bool) {
	for _, line := range lines {
		for _, r := range line {
			if !unicode.IsSpace(r) {
				return r, true
			}
		}
	}
	return 0, false
}
