package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"copilot/internal/domain"
)

// BOM is the UTF-8 byte order mark. Excel needs it to detect UTF-8 in CSV files.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// TableFormats lists the formats a table can be rendered to.
var TableFormats = []domain.ExportFormat{domain.FormatCSV, domain.FormatXLSX, domain.FormatJSON}

// RenderTable renders t in the requested format. sheet names the worksheet
// for xlsx output.
func RenderTable(format domain.ExportFormat, t *domain.Table, sheet string) ([]byte, error) {
	switch format {
	case domain.FormatCSV:
		var buf bytes.Buffer
		if err := WriteTableCSV(&buf, t); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case domain.FormatXLSX:
		return TableXLSX(t, sheet)
	case domain.FormatJSON:
		return TableJSON(t)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
}

// WriteTableCSV writes a BOM, a header of the table's columns, and one row per
// record. Missing and null cells are empty.
func WriteTableCSV(w io.Writer, t *domain.Table) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Text()
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TableJSON encodes the records as a JSON array of objects with a four space
// indent. Each object carries its source fields only, in column order.
func TableJSON(t *domain.Table) ([]byte, error) {
	items := make([]domain.Value, t.Len())
	for i := range items {
		items[i] = t.SourceObject(i)
	}
	compact, err := domain.Array(items).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding table: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "    "); err != nil {
		return nil, fmt.Errorf("encoding table: %w", err)
	}
	return buf.Bytes(), nil
}

// TableXLSX writes the table to a single worksheet with a bold header row.
// Numbers and booleans keep their cell type; everything else is text.
func TableXLSX(t *domain.Table, sheet string) ([]byte, error) {
	if sheet == "" {
		sheet = "Sheet1"
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if len(t.Columns) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("header style: %w", err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
			return nil, fmt.Errorf("header style: %w", err)
		}
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = xlsxCell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func xlsxCell(v domain.Value) any {
	switch v.Kind() {
	case domain.KindNumber:
		n, _ := v.Num()
		if f, err := strconv.ParseFloat(n.String(), 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == n.String() {
			return f
		}
		return n.String()
	case domain.KindBool:
		b, _ := v.Bool()
		return b
	case domain.KindMissing, domain.KindNull:
		return nil
	default:
		return v.Text()
	}
}
