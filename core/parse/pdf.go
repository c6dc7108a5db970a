package parse

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/text"
	"github.com/ledongthuc/pdf"
)

// rowTolerance is how far apart (in points) two glyph baselines may be
// and still belong to the same line.
const rowTolerance = 1.0

// ParsePDF linearises a PDF into text, one line per text row, pages in
// order. Pages whose content cannot be decoded are skipped.
func ParsePDF(data []byte) (out string, err error) {
	if len(data) == 0 {
		return "", &core.ParseError{Kind: "pdf", Err: errors.New("empty document")}
	}

	// The reader panics on some truncated xref tables.
	defer func() {
		if r := recover(); r != nil {
			out, err = "", &core.ParseError{Kind: "pdf", Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &core.ParseError{Kind: "pdf", Err: err}
	}

	var lines []string
	for i := 1; i <= reader.NumPage(); i++ {
		pageLines, err := readPage(reader.Page(i))
		if err != nil {
			continue
		}
		lines = append(lines, pageLines...)
	}
	return strings.Join(lines, "\n"), nil
}

// PDFLines is ParsePDF split into lines.
func PDFLines(data []byte) ([]string, error) {
	s, err := ParsePDF(data)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}

type pdfRow struct {
	y     float64
	glyph []pdf.Text
}

// readPage groups the page's glyphs into rows by baseline. Rows run top to
// bottom; glyphs within a row keep content-stream order unless their X
// positions say otherwise.
func readPage(page pdf.Page) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("page content: %v", r)
		}
	}()
	if page.V.IsNull() {
		return nil, nil
	}

	var rows []*pdfRow
	for _, t := range page.Content().Text {
		var row *pdfRow
		for _, r := range rows {
			if math.Abs(r.y-t.Y) < rowTolerance {
				row = r
				break
			}
		}
		if row == nil {
			row = &pdfRow{y: t.Y}
			rows = append(rows, row)
		}
		row.glyph = append(row.glyph, t)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	for _, row := range rows {
		sort.SliceStable(row.glyph, func(i, j int) bool { return row.glyph[i].X < row.glyph[j].X })
		line := strings.TrimRight(joinGlyphs(row.glyph), " ")
		lines = append(lines, text.Sanitize(line))
	}
	return lines, nil
}

// joinGlyphs concatenates a row, inserting a space where the gap between
// two glyphs is wider than a quarter em and the source had none.
func joinGlyphs(glyphs []pdf.Text) string {
	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			gap := g.X - (prev.X + prev.W)
			if prev.W > 0 && gap > prev.FontSize/4 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}
