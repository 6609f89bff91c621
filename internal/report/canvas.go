package report

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// Canvas is the drawing surface the layout writes to. Coordinates are in millimetres.
type Canvas interface {
	PageSize() (w, h float64)
	AddPage()
	SetFont(style string, size float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	// FillRect draws a filled rectangle.
	FillRect(x, y, w, h float64)
	// Text writes one line inside a box of width w starting at (x, y). align is "L", "C" or "R".
	Text(x, y, w, h float64, s, align string)
	// SplitText wraps s into lines no wider than w at the current font.
	SplitText(s string, w float64) []string
}

const fontFamily = "Helvetica"

// pdfCanvas draws on an fpdf document.
type pdfCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFCanvas(title string) *pdfCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("critique-backend", true)
	return &pdfCanvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (c *pdfCanvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}

func (c *pdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *pdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *pdfCanvas) SetTextColor(r, g, b int) {
	c.pdf.SetTextColor(r, g, b)
}

func (c *pdfCanvas) SetFillColor(r, g, b int) {
	c.pdf.SetFillColor(r, g, b)
}

func (c *pdfCanvas) FillRect(x, y, w, h float64) {
	c.pdf.Rect(x, y, w, h, "F")
}

func (c *pdfCanvas) Text(x, y, w, h float64, s, align string) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.tr(s), "", 0, align, false, 0, "")
}

func (c *pdfCanvas) SplitText(s string, w float64) []string {
	return c.pdf.SplitText(c.tr(s), w)
}

func (c *pdfCanvas) output(w io.Writer) error {
	if err := c.pdf.Error(); err != nil {
		return err
	}
	return c.pdf.Output(w)
}
