// Package converter turns spreadsheet files into CSV without changing
// their content.
package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetetl/internal/dataset"
)

// Conversion errors.
var (
	ErrUnreadable = errors.New("unreadable spreadsheet")
	ErrNoSheets   = errors.New("workbook has no sheets")
	ErrEmptySheet = errors.New("first sheet is empty")
	// ErrLegacyFormat marks binary .xls workbooks, which cannot be read.
	ErrLegacyFormat = errors.New("legacy .xls workbook not supported, save it as .xlsx")
)

// Converter converts the first sheet of a workbook to CSV.
type Converter struct{}

// New creates a new converter instance.
func New() *Converter {
	return &Converter{}
}

// Convert reads the workbook at src and writes its first sheet to dst as
// CSV. Row order is preserved.
func (c *Converter) Convert(src, dst string) error {
	ds, err := c.ReadSheet(src)
	if err != nil {
		return err
	}

	if err := ds.WriteFile(dst); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return nil
}

// ReadSheet loads the first sheet of the workbook at path. Blank header
// cells and cells past the last header are named "Unnamed: N"; fully
// blank rows are dropped.
//
// Numeric cells keep their stored value rather than the formatted
// display ("1199.99", not "1,199.99"). Date-formatted cells become ISO
// dates, with the time of day appended when it is not midnight. Percent
// formatted cells and all text cells keep their displayed text.
func (c *Converter) ReadSheet(path string) (*dataset.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return nil, fmt.Errorf("%w: %s", ErrLegacyFormat, filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := newSheetReader(f, sheets[0]).rows()
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrUnreadable, sheets[0], err)
	}

	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, fmt.Errorf("%w: sheet %q", ErrEmptySheet, sheets[0])
	}

	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := make([]string, width)
	for i := range headers {
		if i < len(rows[0]) && rows[0][i] != "" {
			headers[i] = rows[0][i]
			continue
		}

		headers[i] = fmt.Sprintf("Unnamed: %d", i)
	}

	ds := dataset.New(headers)
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrUnreadable, sheets[0], err)
	}

	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		values := make([]dataset.Value, len(row))
		for i, cell := range row {
			values[i] = dataset.Cell(cell)
		}

		if err := ds.AppendRow(values); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// cellFormat is the part of a cell's number format that decides how its
// value is staged.
type cellFormat int

const (
	formatGeneral cellFormat = iota
	formatDate
	formatPercent
)

// Built-in number format ids for dates and times, including the CJK ones.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

type sheetReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	formats  map[int]cellFormat
}

func newSheetReader(f *excelize.File, sheet string) *sheetReader {
	r := &sheetReader{f: f, sheet: sheet, formats: make(map[int]cellFormat)}

	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	return r
}

// rows returns the sheet's cells as staged text.
func (r *sheetReader) rows() ([][]string, error) {
	shown, err := r.f.GetRows(r.sheet)
	if err != nil {
		return nil, err
	}

	raw, err := r.f.GetRows(r.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	for i, row := range shown {
		if i >= len(raw) {
			break
		}

		for j := range row {
			if j >= len(raw[i]) {
				break
			}

			text, err := r.cell(i, j, raw[i][j], row[j])
			if err != nil {
				return nil, err
			}

			row[j] = text
		}
	}

	return shown, nil
}

func (r *sheetReader) cell(row, col int, raw, shown string) (string, error) {
	if raw == "" {
		return shown, nil
	}

	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", err
	}

	typ, err := r.f.GetCellType(r.sheet, name)
	if err != nil {
		return "", err
	}

	if typ != excelize.CellTypeUnset && typ != excelize.CellTypeNumber {
		return shown, nil
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return shown, nil
	}

	format, err := r.format(name)
	if err != nil {
		return "", err
	}

	switch format {
	case formatDate:
		t, err := excelize.ExcelDateToTime(num, r.date1904)
		if err != nil {
			return shown, nil
		}

		return isoTime(t), nil
	case formatPercent:
		return shown, nil
	default:
		return raw, nil
	}
}

func (r *sheetReader) format(cell string) (cellFormat, error) {
	id, err := r.f.GetCellStyle(r.sheet, cell)
	if err != nil {
		return formatGeneral, err
	}

	if format, ok := r.formats[id]; ok {
		return format, nil
	}

	format := formatGeneral

	style, err := r.f.GetStyle(id)
	if err == nil && style != nil {
		format = classifyNumFmt(style.NumFmt, style.CustomNumFmt)
	}

	r.formats[id] = format

	return format, nil
}

func classifyNumFmt(id int, custom *string) cellFormat {
	if custom == nil || *custom == "" {
		switch {
		case builtinDateFormats[id]:
			return formatDate
		case id == 9 || id == 10:
			return formatPercent
		default:
			return formatGeneral
		}
	}

	code := stripLiterals(*custom)

	switch {
	case strings.Contains(code, "%"):
		return formatPercent
	case strings.ContainsAny(strings.ToLower(code), "ydhms"):
		return formatDate
	default:
		return formatGeneral
	}
}

// stripLiterals drops quoted text, escaped characters and bracketed
// sections (colors, locales) from a number format code.
func stripLiterals(code string) string {
	var sb strings.Builder

	inQuote, inBracket := false, false

	for i := 0; i < len(code); i++ {
		ch := code[i]

		switch {
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			inBracket = ch != ']'
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			sb.WriteByte(ch)
		}
	}

	return sb.String()
}

func isoTime(t time.Time) string {
	t = t.Round(time.Second)

	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}

	return t.Format("2006-01-02 15:04:05")
}
