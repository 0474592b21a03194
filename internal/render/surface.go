package render

import "io"

// Font styles accepted by Surface.SetFont.
const (
	StyleNormal = ""
	StyleBold   = "B"
)

// Surface is the page-based drawing target the invoice layout writes to.
// Coordinates are millimetres from the top-left corner of the current page;
// Text positions are baselines.
type Surface interface {
	AddPage()
	SetFont(style string, size float64)
	Text(x, y float64, s string)
	TextWidth(s string) float64
	// SplitText word-wraps s so that no line is wider than width.
	SplitText(s string, width float64) []string
	// Rect draws an outlined rectangle, or a filled one when fill is true.
	Rect(x, y, w, h float64, fill bool)
	// Image places a registered image. Unknown names are ignored.
	Image(name string, x, y, w, h float64)
	PageCount() int
	Output(w io.Writer) error
}
