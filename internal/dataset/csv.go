package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedCSV is returned when the CSV input cannot be parsed.
var ErrMalformedCSV = errors.New("malformed csv")

// Read loads a dataset from CSV. The first record is the header. A UTF-8
// byte order mark is dropped and invalid UTF-8 is replaced. Short records
// are padded with absent values; empty cells become absent.
func Read(r io.Reader) (*Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}

	ds := New(header)
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
		}

		row := make([]Value, len(record))
		for i, cell := range record {
			row[i] = Cell(cell)
		}

		if err := ds.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// ReadFile loads a dataset from a CSV file.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write serializes the dataset as CSV with a header row.
func (d *Dataset) Write(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(d.Headers); err != nil {
		return err
	}

	record := make([]string, len(d.Headers))
	for _, row := range d.Rows {
		for i, v := range row {
			record[i] = v.String()
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

// WriteFile writes the dataset to path. On failure the partially written
// file is removed.
func (d *Dataset) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close csv: %w", cerr)
		}

		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := d.Write(f); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}
