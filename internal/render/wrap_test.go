package render

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func runeCount(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"greedy words", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"blank paragraphs dropped", "aaa\n\n   \nbbb", 7, []string{"aaa", "bbb"}},
		{"long word broken", "dddddddddd", 7, []string{"ddddddd", "ddd"}},
		{"multibyte runes kept whole", "₹₹₹₹", 2, []string{"₹₹", "₹₹"}},
		{"narrower than a rune", "abc", 0.5, []string{"a", "b", "c"}},
		{"empty", "", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width, runeCount))
		})
	}
}
