package metaengine

import "strings"

// Excerpt returns at most max runes of s, cut at the nearest preceding word
// boundary so no word is split. Whitespace runs collapse to single spaces
// first, so line breaks in source text never leak into descriptions. A single
// unbroken run longer than the limit is the one case that gets a hard cut.
func Excerpt(s string, max int) string {
	if max <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	// The word at the limit ends cleanly only if a space follows it.
	if runes[max] == ' ' {
		return string(runes[:max])
	}
	for i := max - 1; i > 0; i-- {
		if runes[i] == ' ' {
			return string(runes[:i])
		}
	}
	return string(runes[:max])
}
