package render

import (
	"fmt"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the name of the single worksheet of every workbook.
const xlsxSheet = "Table"

// XLSXRenderer writes a workbook with one worksheet: a bold, frozen header
// row followed by typed cells. Caption and source URL go into the document
// properties.
type XLSXRenderer struct{}

// NewXLSXRenderer creates an XLSXRenderer.
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

// Render builds the workbook in memory.
func (r *XLSXRenderer) Render(t *core.CleanedTable, meta core.TableMetadata) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(t.Columns))
	for j, name := range t.Headers() {
		header[j] = name
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i := 0; i < t.RowCount; i++ {
		row := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Value(i)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := styleHeader(f, len(t.Columns)); err != nil {
		return nil, err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       caption(meta),
		Subject:     meta.SourceURL,
		Description: "Table scraped from " + meta.SourceURL,
		Creator:     "wikitables",
	}); err != nil {
		return nil, fmt.Errorf("setting document properties: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for Excel output.
func (r *XLSXRenderer) Extension() string {
	return ".xlsx"
}

func styleHeader(f *excelize.File, width int) error {
	if width == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
