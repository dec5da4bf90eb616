// Package sheet renders generated bingo cards to a printable PDF.
//
// Cards are placed one, two or four to a US Letter page. Single-line
// cell text is sized to fit its cell; multi-line text uses a fixed,
// configurable font size. The document is built fully in memory, so a
// failed run never leaves a partial file on disk.
package sheet

import (
	"bytes"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/bingoforge/pkg/card"
	"github.com/matzehuels/bingoforge/pkg/errors"
)

const (
	fontFamily = "Helvetica"

	pageMargin = 36.0 // pt
	slotGutter = 24.0 // pt between card slots
	titleBand  = 30.0 // pt reserved above the grid for the card title
	serialBand = 14.0 // pt reserved below the grid for the card serial

	// Header row height as a fraction of a value cell.
	headerRatio = 0.7

	titleFontSize  = 18.0
	labelFontSize  = 14.0
	serialFontSize = 7.0
)

// slotGrids maps cards-per-page to the page's (columns, rows) of card slots.
var slotGrids = map[int][2]int{
	1: {1, 1},
	2: {1, 2},
	4: {2, 2},
}

// Renderer lays bingo cards out on PDF pages.
type Renderer struct {
	perPage   int
	title     string
	labels    []string
	multiSize float64
	freeText  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTitle prints a title above every card.
func WithTitle(title string) Option {
	return func(r *Renderer) { r.title = title }
}

// WithLabels prints a column-label header row on every card.
// A nil slice suppresses the header.
func WithLabels(labels []string) Option {
	return func(r *Renderer) { r.labels = labels }
}

// WithCardsPerPage sets how many cards share a page: 1, 2 or 4.
func WithCardsPerPage(n int) Option {
	return func(r *Renderer) { r.perPage = n }
}

// WithMultilineFontSize sets the fixed font size for cell values that
// span multiple lines.
func WithMultilineFontSize(size float64) Option {
	return func(r *Renderer) { r.multiSize = size }
}

// WithFreeText sets the marker text shown in the free space.
func WithFreeText(text string) Option {
	return func(r *Renderer) { r.freeText = text }
}

// New creates a Renderer. It fails with INVALID_CONFIG when the
// cards-per-page or multiline font size is out of range.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		perPage:   4,
		multiSize: 12,
		freeText:  "FREE",
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, ok := slotGrids[r.perPage]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"invalid cards per page %d (must be 1, 2 or 4)", r.perPage)
	}
	if r.multiSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"multiline font size must be positive, got %v", r.multiSize)
	}
	return r, nil
}

// Pages returns how many pages nCards occupy.
func (r *Renderer) Pages(nCards int) int {
	return (nCards + r.perPage - 1) / r.perPage
}

// Render builds the PDF document in memory.
func (r *Renderer) Render(cards []card.Card) ([]byte, error) {
	if len(cards) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no cards to render")
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()

	grid := slotGrids[r.perPage]
	slotCols, slotRows := grid[0], grid[1]
	slotW := (pageW - 2*pageMargin - slotGutter*float64(slotCols-1)) / float64(slotCols)
	slotH := (pageH - 2*pageMargin - slotGutter*float64(slotRows-1)) / float64(slotRows)

	for i, c := range cards {
		slot := i % r.perPage
		if slot == 0 {
			pdf.AddPage()
		}
		x := pageMargin + float64(slot%slotCols)*(slotW+slotGutter)
		y := pageMargin + float64(slot/slotCols)*(slotH+slotGutter)
		r.drawCard(pdf, tr, c, x, y, slotW, slotH)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render PDF")
	}
	return buf.Bytes(), nil
}

// RenderFile renders the cards and writes the document to path.
// The PDF is assembled in memory first; path is only touched once
// rendering has succeeded.
func (r *Renderer) RenderFile(cards []card.Card, path string) error {
	data, err := r.Render(cards)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// drawCard draws one card into the slot at (x, y).
func (r *Renderer) drawCard(pdf *fpdf.Fpdf, tr func(string) string, c card.Card, x, y, w, h float64) {
	rows := len(c.Cells)
	cols := len(c.Cells[0])

	top := y
	if r.title != "" {
		pdf.SetFont(fontFamily, "B", titleFontSize)
		pdf.SetTextColor(0, 0, 0)
		tw := pdf.GetStringWidth(tr(r.title))
		pdf.Text(x+(w-tw)/2, top+titleFontSize, tr(r.title))
		top += titleBand
	}

	headerRows := 0.0
	if r.labels != nil {
		headerRows = headerRatio
	}
	cellH := (h - (top - y) - serialBand) / (float64(rows) + headerRows)
	cellW := w / float64(cols)
	gridTop := top + headerRows*cellH

	if r.labels != nil {
		pdf.SetFont(fontFamily, "B", labelFontSize)
		pdf.SetTextColor(0, 0, 0)
		for col, label := range r.labels {
			lw := pdf.GetStringWidth(tr(label))
			cx := x + float64(col)*cellW
			pdf.Text(cx+(cellW-lw)/2, top+headerRows*cellH-labelFontSize*0.35, tr(label))
		}
	}

	// Grid lines. The header band, when present, shows only its bottom
	// edge, which doubles as the grid's top rule.
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.8)
	gridBottom := gridTop + float64(rows)*cellH
	for row := 0; row <= rows; row++ {
		ly := gridTop + float64(row)*cellH
		pdf.Line(x, ly, x+float64(cols)*cellW, ly)
	}
	for col := 0; col <= cols; col++ {
		lx := x + float64(col)*cellW
		pdf.Line(lx, gridTop, lx, gridBottom)
	}

	pdf.SetTextColor(0, 0, 0)
	for row, cells := range c.Cells {
		for col, cell := range cells {
			cx := x + float64(col)*cellW
			cy := gridTop + float64(row)*cellH
			text := cell.Text
			if cell.Free {
				text = r.freeText
			}
			if cell.Multiline {
				r.drawMultiline(pdf, tr, text, cx, cy, cellW, cellH)
				continue
			}
			r.drawFitted(pdf, tr, text, cx, cy, cellW, cellH)
		}
	}

	pdf.SetFont(fontFamily, "", serialFontSize)
	pdf.SetTextColor(128, 128, 128)
	serial := "No. " + c.Serial
	sw := pdf.GetStringWidth(serial)
	pdf.Text(x+float64(cols)*cellW-sw, gridBottom+serialBand*0.7, serial)
	pdf.SetTextColor(0, 0, 0)
}

// drawFitted draws single-line text centered in a cell at the largest
// size that fits.
func (r *Renderer) drawFitted(pdf *fpdf.Fpdf, tr func(string) string, text string, x, y, w, h float64) {
	pdf.SetFont(fontFamily, "", fontSizeMax)
	size := fitFontSize(pdf, tr(text), w, h)
	pdf.SetFontSize(size)
	tw := pdf.GetStringWidth(tr(text))
	pdf.Text(x+(w-tw)/2, y+h/2+size*0.35, tr(text))
}

// drawMultiline draws line-broken text at the fixed multiline size,
// centered as a block in the cell.
func (r *Renderer) drawMultiline(pdf *fpdf.Fpdf, tr func(string) string, text string, x, y, w, h float64) {
	pdf.SetFont(fontFamily, "", r.multiSize)
	lines := strings.Split(text, "\n")
	lineH := r.multiSize * 1.2
	blockH := lineH * float64(len(lines))
	baseY := y + (h-blockH)/2 + r.multiSize*0.9
	for i, line := range lines {
		lw := pdf.GetStringWidth(tr(line))
		pdf.Text(x+(w-lw)/2, baseY+float64(i)*lineH, tr(line))
	}
}
