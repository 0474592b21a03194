package render

import (
	"io"
	"strings"
)

// recordingSurface is a deterministic Surface: every rune is 2mm wide and
// text wraps greedily on spaces.
type recordingSurface struct {
	page   int
	texts  []textOp
	rects  []rectOp
	images []string
}

type textOp struct {
	page int
	x, y float64
	s    string
}

type rectOp struct {
	page       int
	x, y, w, h float64
	fill       bool
}

const runeWidth = 2.0

func (r *recordingSurface) AddPage() {
	r.page++
}

func (r *recordingSurface) SetFont(string, float64) {}

func (r *recordingSurface) PageCount() int {
	return r.page
}

func (r *recordingSurface) Text(x, y float64, s string) {
	r.texts = append(r.texts, textOp{page: r.page, x: x, y: y, s: s})
}

func (r *recordingSurface) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * runeWidth
}

func (r *recordingSurface) SplitText(s string, width float64) []string {
	perLine := int(width / runeWidth)
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		cur := ""
		for _, word := range strings.Fields(para) {
			switch {
			case cur == "":
				cur = word
			case len([]rune(cur))+1+len([]rune(word)) <= perLine:
				cur += " " + word
			default:
				lines = append(lines, cur)
				cur = word
			}
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

func (r *recordingSurface) Rect(x, y, w, h float64, fill bool) {
	r.rects = append(r.rects, rectOp{page: r.page, x: x, y: y, w: w, h: h, fill: fill})
}

func (r *recordingSurface) Image(name string, _, _, _, _ float64) {
	r.images = append(r.images, name)
}

func (r *recordingSurface) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

func (r *recordingSurface) find(s string) []textOp {
	var out []textOp
	for _, t := range r.texts {
		if t.s == s {
			out = append(out, t)
		}
	}
	return out
}

func (r *recordingSurface) has(s string) bool { return len(r.find(s)) > 0 }
