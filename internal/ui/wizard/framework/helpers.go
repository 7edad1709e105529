package framework

import (
	"strings"
	"unicode"
)

// RuneFilter determines which runes are allowed in input.
type RuneFilter func(r rune) bool

// RuneFilterNone allows all printable characters.
func RuneFilterNone(r rune) bool {
	return unicode.IsPrint(r)
}

// RuneFilterDigits allows 0-9 only. Use for integer fields like ids.
func RuneFilterDigits(r rune) bool {
	return r >= '0' && r <= '9'
}

// RuneFilterDecimal allows digits and a decimal point, for weights and
// temperatures.
func RuneFilterDecimal(r rune) bool {
	return RuneFilterDigits(r) || r == '.'
}

// RuneFilterDuration allows digits and ':' for "m:ss" brew times.
func RuneFilterDuration(r rune) bool {
	return RuneFilterDigits(r) || r == ':'
}

// FilterRunes returns characters from a rune slice that pass the filter.
// If filter is nil, defaults to RuneFilterNone (all printable).
func FilterRunes(runes []rune, filter RuneFilter) string {
	if filter == nil {
		filter = RuneFilterNone
	}
	var result strings.Builder
	for _, r := range runes {
		if filter(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
