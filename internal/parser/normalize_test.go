package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "AlreadyRectangular", input: []string{"22", "22"}, want: []string{"22", "22"}},
		{name: "TrailingSpacesStripped", input: []string{"1  ", "11\t"}, want: []string{"1 ", "11"}},
		{name: "PadsToLongest", input: []string{"333", "3", " 3"}, want: []string{"333", "3  ", " 3 "}},
		{name: "LeadingSpacesKept", input: []string{"  1", "111"}, want: []string{"  1", "111"}},
		{name: "ComposesCombiningMarks", input: []string{"e\u0301", "ee"}, want: []string{"\u00e9 ", "ee"}},
		{name: "Empty", input: nil, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	input := []string{"1 ", "11"}
	Normalize(input)
	assert.Equal(t, []string{"1 ", "11"}, input)
}

func TestValidateLines_Valid(t *testing.T) {
	for _, lines := range [][]string{
		{"1"},
		{"333", "3 3", "333"},
		{"  5", "555"},
	} {
		assert.Empty(t, ValidateLines(lines), "%q", lines)
	}
}

func TestValidateLines_NoLines(t *testing.T) {
	errs := ValidateLines(nil)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrNoLines)
}

func TestValidateLines_BlankLine(t *testing.T) {
	errs := ValidateLines([]string{"22", "  ", "22"})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrBlankLine)
	assert.EqualError(t, errs[0], "blank line: line 2")
}

func TestValidateLines_OnlyWhitespace(t *testing.T) {
	errs := ValidateLines([]string{" ", "\t"})
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], ErrBlankLine)
	assert.ErrorIs(t, errs[1], ErrBlankLine)
	assert.ErrorIs(t, errs[2], ErrNoSymbol)
}

func TestValidateLines_MixedSymbols(t *testing.T) {
	errs := ValidateLines([]string{"11", "12", "31"})
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrMixedSymbols)
	assert.EqualError(t, errs[0], `mixed symbols: line 2 has "2", expected '1'`)
	assert.EqualError(t, errs[1], `mixed symbols: line 3 has "3", expected '1'`)
}
