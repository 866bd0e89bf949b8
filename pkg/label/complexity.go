package label

import (
	"strings"
	"unicode"
)

// Complexity reduces a field value to a monotonic scalar used to pick
// a font size from the orientation's threshold tables. Longer or
// denser text always yields a larger number: the measure is the rune
// count plus a small bonus per additional word and per digit, since
// digits and word gaps render wider than average glyphs.
func Complexity(value string) float64 {
	if value == "" {
		return 0
	}
	// A break sentinel renders as one line break, not four characters.
	normalized := strings.ReplaceAll(value, LineBreakSentinel, "\n")

	runes := 0
	digits := 0
	for _, r := range normalized {
		runes++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	words := len(strings.Fields(normalized))
	c := float64(runes) + float64(digits)*0.25
	if words > 1 {
		c += float64(words-1) * 0.5
	}
	return c
}

// longestWordLen returns the length in runes of the longest
// whitespace-delimited word in value.
func longestWordLen(value string) int {
	longest := 0
	for _, w := range strings.Fields(value) {
		if n := len([]rune(w)); n > longest {
			longest = n
		}
	}
	return longest
}

// countWordsAtLeast returns how many words in value have at least n
// runes.
func countWordsAtLeast(value string, n int) int {
	count := 0
	for _, w := range strings.Fields(value) {
		if len([]rune(w)) >= n {
			count++
		}
	}
	return count
}

// digitCount returns the number of decimal digits in value. Currency
// symbols and separators are ignored.
func digitCount(value string) int {
	n := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
