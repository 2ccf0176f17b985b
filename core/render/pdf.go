package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfRowHeight  = 6.0
	pdfFontSize   = 8.0
	pdfCellMargin = 1.0
)

// PDFRenderer renders a table as a bordered grid on landscape A4 pages.
// The header row is repeated on every page.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render draws t into PDF bytes.
func (r *PDFRenderer) Render(t *core.CleanedTable, meta core.TableMetadata) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title from the caption.
	if c := caption(meta); c != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(c), "", "L", false)
		pdf.Ln(2)
	}

	// Source URL.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+meta.SourceURL), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if len(t.Columns) > 0 {
		pageW, pageH := pdf.GetPageSize()
		left, _, right, bottom := pdf.GetMargins()
		colW := (pageW - left - right) / float64(len(t.Columns))

		aligns := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			aligns[j] = "L"
			if _, ok := c.(*core.NumericColumn); ok {
				aligns[j] = "R"
			}
		}

		header := t.Headers()
		renderGridRow(pdf, tr, header, colW, nil, true)

		for i := 0; i < t.RowCount; i++ {
			if pdf.GetY()+pdfRowHeight > pageH-bottom {
				pdf.AddPage()
				renderGridRow(pdf, tr, header, colW, nil, true)
			}
			renderGridRow(pdf, tr, t.StringRow(i), colW, aligns, false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderGridRow draws one row of bordered cells. Text that does not fit its
// cell is truncated.
func renderGridRow(pdf *gofpdf.Fpdf, tr func(string) string, cells []string, colW float64, aligns []string, header bool) {
	if header {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(230, 230, 230)
	} else {
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}
	for j, cell := range cells {
		align := "L"
		if aligns != nil {
			align = aligns[j]
		}
		text := fitText(pdf, tr(cell), colW-2*pdfCellMargin)
		pdf.CellFormat(colW, pdfRowHeight, text, "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

// fitText shortens s with a trailing "..." until it is at most width wide.
// s is already translated to the single-byte font encoding.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	for len(s) > 0 && pdf.GetStringWidth(s+ellipsis) > width {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}
