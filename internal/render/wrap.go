package render

import (
	"strings"
	"unicode/utf8"
)

// wrapText word-wraps text to width using measure for line widths. Blank
// paragraphs are dropped and a word wider than width is broken between
// runes. Lines are returned untranslated.
func wrapText(text string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		cur := ""
		for _, word := range strings.Fields(para) {
			if cur != "" {
				if measure(cur+" "+word) <= width {
					cur += " " + word
					continue
				}
				lines = append(lines, cur)
				cur = ""
			}
			for measure(word) > width {
				cut := fitPrefix(word, width, measure)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			cur = word
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

// fitPrefix returns the byte length of the longest proper rune prefix of word
// that fits in width, and at least one rune.
func fitPrefix(word string, width float64, measure func(string) float64) int {
	_, first := utf8.DecodeRuneInString(word)
	cut := first
	for i := range word {
		if i == 0 {
			continue
		}
		if measure(word[:i]) > width {
			break
		}
		cut = i
	}
	return cut
}
