package dataset

import (
	"errors"
	"fmt"
)

// Dataset errors.
var (
	ErrNoHeader        = errors.New("dataset has no header row")
	ErrDuplicateHeader = errors.New("duplicate column header")
	ErrRowWidth        = errors.New("row width does not match header")
	ErrUnknownColumn   = errors.New("unknown column")
)

// Dataset is an ordered set of rows sharing one column set.
// Every row holds exactly len(Headers) values.
type Dataset struct {
	Headers []string
	Rows    [][]Value
}

// New creates an empty dataset with the given headers.
func New(headers []string) *Dataset {
	return &Dataset{
		Headers: append([]string(nil), headers...),
	}
}

// AppendRow adds a row, padding short rows with absent values.
func (d *Dataset) AppendRow(row []Value) error {
	if len(row) > len(d.Headers) {
		return fmt.Errorf("%w: row %d has %d values, header has %d",
			ErrRowWidth, len(d.Rows)+1, len(row), len(d.Headers))
	}

	padded := make([]Value, len(d.Headers))
	copy(padded, row)
	d.Rows = append(d.Rows, padded)

	return nil
}

// Index returns the position of a column, or -1.
func (d *Dataset) Index(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}

	return -1
}

// Has reports whether the dataset has a column.
func (d *Dataset) Has(name string) bool {
	return d.Index(name) >= 0
}

// RenameColumns replaces every header with rename(header).
func (d *Dataset) RenameColumns(rename func(string) string) {
	for i, h := range d.Headers {
		d.Headers[i] = rename(h)
	}
}

// SetColumn sets every row of column name to v, appending the column if
// it does not exist yet.
func (d *Dataset) SetColumn(name string, v Value) {
	idx := d.Index(name)
	if idx < 0 {
		d.Headers = append(d.Headers, name)
		for i := range d.Rows {
			d.Rows[i] = append(d.Rows[i], v)
		}

		return
	}

	for i := range d.Rows {
		d.Rows[i][idx] = v
	}
}

// MapColumn replaces each value of column name with fn(value). The first
// error aborts the mapping and is returned with the 1-based row number;
// rows already mapped keep their new values.
func (d *Dataset) MapColumn(name string, fn func(Value) (Value, error)) error {
	idx := d.Index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}

	for i, row := range d.Rows {
		v, err := fn(row[idx])
		if err != nil {
			return fmt.Errorf("column %s, row %d: %w", name, i+1, err)
		}

		row[idx] = v
	}

	return nil
}

// Column returns a copy of the values in column name.
func (d *Dataset) Column(name string) ([]Value, error) {
	idx := d.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}

	values := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}

	return values, nil
}

// Validate checks the structural invariants of the dataset.
func (d *Dataset) Validate() error {
	if d == nil || len(d.Headers) == 0 {
		return ErrNoHeader
	}

	seen := make(map[string]bool, len(d.Headers))
	for _, h := range d.Headers {
		if seen[h] {
			return fmt.Errorf("%w: %q", ErrDuplicateHeader, h)
		}

		seen[h] = true
	}

	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("%w: row %d has %d values, header has %d",
				ErrRowWidth, i+1, len(row), len(d.Headers))
		}
	}

	return nil
}
