package sheet

import "github.com/go-pdf/fpdf"

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontSizeMin     = 6.0
	fontSizeMax     = 28.0
)

// fitFontSize returns the largest font size, clamped to
// [fontSizeMin, fontSizeMax], at which text fits a cell of the given
// dimensions. The current font must be set; the size is measured with
// the real string width, then scaled down when the text is too wide.
func fitFontSize(pdf *fpdf.Fpdf, text string, cellW, cellH float64) float64 {
	size := min(fontSizeMax, cellH*fontHeightRatio)
	if text == "" {
		return size
	}
	pdf.SetFontSize(size)
	avail := cellW * fontWidthRatio
	if w := pdf.GetStringWidth(text); w > avail {
		size *= avail / w
	}
	return max(fontSizeMin, min(fontSizeMax, size))
}
