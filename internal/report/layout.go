package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"critique-backend/internal/analyses"
)

const (
	Title            = "UI Design Analysis Report"
	NoPalette        = "No color palette detected"
	NotAvailable     = "Not available"
	NoFeedback       = "No feedback available"
	FooterText       = "Generated by UI Design Analyzer"
	generatedOnLabel = "Generated on: "

	marginX      = 20.0
	marginTop    = 20.0
	marginBottom = 20.0
	contentWidth = 170.0
	lineHeight   = 6.0
	headingSize  = 14.0
	bodySize     = 11.0
	sectionGap   = 6.0

	swatchSize    = 20.0
	swatchStep    = 30.0
	swatchLabelH  = 6.0
	swatchPerRow  = 5
	swatchRowStep = swatchSize + swatchLabelH + 4
)

// cursor tracks the vertical write position and breaks pages when content would overflow.
type cursor struct {
	c     Canvas
	y     float64
	limit float64
}

func (cur *cursor) ensure(h float64) {
	if cur.y+h <= cur.limit {
		return
	}
	cur.c.AddPage()
	cur.y = marginTop
}

func (cur *cursor) heading(text string) {
	cur.ensure(lineHeight*2 + 2)
	cur.c.SetFont("B", headingSize)
	cur.c.SetTextColor(33, 37, 41)
	cur.c.Text(marginX, cur.y, contentWidth, lineHeight+2, text, "L")
	cur.y += lineHeight + 4
}

// paragraph wraps text to the content width and advances by the wrapped line count.
func (cur *cursor) paragraph(text string) {
	cur.c.SetFont("", bodySize)
	cur.c.SetTextColor(60, 60, 60)
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lines := cur.c.SplitText(block, contentWidth)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for _, line := range lines {
			cur.ensure(lineHeight)
			cur.c.Text(marginX, cur.y, contentWidth, lineHeight, line, "L")
			cur.y += lineHeight
		}
	}
	cur.y += sectionGap
}

// Layout draws the report for rec onto c. Section order is fixed: header,
// overall rating, color palette, color critique, detailed feedback, footer.
func Layout(c Canvas, rec analyses.Record, generatedAt time.Time) {
	_, pageH := c.PageSize()
	c.AddPage()
	cur := &cursor{c: c, y: marginTop, limit: pageH - marginBottom}

	c.SetFont("B", 20)
	c.SetTextColor(20, 20, 20)
	c.Text(marginX, cur.y, contentWidth, 10, Title, "C")
	cur.y += 12
	c.SetFont("", 12)
	c.SetTextColor(90, 90, 90)
	c.Text(marginX, cur.y, contentWidth, lineHeight, generatedOnLabel+generatedAt.Format("January 2, 2006"), "C")
	cur.y += lineHeight + 1
	if rec.ID != "" {
		c.SetFont("", 10)
		c.Text(marginX, cur.y, contentWidth, lineHeight, "Analysis ID: "+rec.ID, "C")
		cur.y += lineHeight
	}
	cur.y += sectionGap * 2

	res := rec.Result
	if res == nil {
		res = &analyses.Result{}
	}

	cur.heading("Overall Rating")
	rating := placeholder(res.OverallRating, NotAvailable)
	if res.UIScore != nil {
		rating += fmt.Sprintf("\nUI Score: %.1f/10", *res.UIScore)
	}
	cur.paragraph(rating)

	cur.heading("Color Palette")
	drawPalette(cur, res.ColorPalette)

	cur.heading("Color Critique")
	cur.paragraph(placeholder(res.ColorCritique, NotAvailable))

	cur.heading("Detailed Feedback")
	cur.paragraph(placeholder(res.OtherFeedback, NoFeedback))

	c.SetFont("I", 9)
	c.SetTextColor(140, 140, 140)
	c.Text(marginX, pageH-marginBottom+4, contentWidth, lineHeight, FooterText, "C")
}

// drawPalette draws one labelled swatch per valid hex color. Malformed entries are skipped.
func drawPalette(cur *cursor, palette []string) {
	type swatch struct {
		hex     string
		r, g, b int
	}
	valid := make([]swatch, 0, len(palette))
	for _, raw := range palette {
		r, g, b, ok := ParseHex(raw)
		if !ok {
			continue
		}
		valid = append(valid, swatch{hex: strings.ToUpper(strings.TrimSpace(raw)), r: r, g: g, b: b})
	}
	if len(valid) == 0 {
		cur.paragraph(NoPalette)
		return
	}

	for i, sw := range valid {
		col := i % swatchPerRow
		if col == 0 {
			if i > 0 {
				cur.y += swatchRowStep
			}
			cur.ensure(swatchRowStep)
		}
		x := marginX + float64(col)*swatchStep
		cur.c.SetFillColor(sw.r, sw.g, sw.b)
		cur.c.FillRect(x, cur.y, swatchSize, swatchSize)
		cur.c.SetFont("", 8)
		cur.c.SetTextColor(60, 60, 60)
		cur.c.Text(x, cur.y+swatchSize+1, swatchSize, swatchLabelH-1, sw.hex, "C")
	}
	cur.y += swatchRowStep + sectionGap
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func placeholder(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
