package normalizer

import (
	"errors"
	"fmt"
	"time"

	"sheetetl/internal/dataset"
	"sheetetl/internal/schema"
)

// ErrColumnCollision is returned when renaming produces duplicate columns.
var ErrColumnCollision = errors.New("renamed columns collide")

// TimestampLayout is used for date_created and date_modified.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Transformer applies the column mapping and field normalizers.
type Transformer struct {
	now func() time.Time
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

// Transform normalizes ds in place and returns it. Steps run in order:
// rename, metadata, percentages, prices, dates, trim. Designated columns
// missing from the dataset are skipped. A date that cannot be parsed
// fails the whole dataset.
func (t *Transformer) Transform(ds *dataset.Dataset, fileName string) (*dataset.Dataset, error) {
	ds.RenameColumns(schema.Rename)

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrColumnCollision, err)
	}

	now := t.now()
	stamp := dataset.Text(now.Format(TimestampLayout))

	ds.SetColumn(schema.FileName, dataset.Text(fileName))
	ds.SetColumn(schema.FileDate, dataset.Text(now.Format(DateLayout)))
	ds.SetColumn(schema.DateCreated, stamp)
	ds.SetColumn(schema.DateModified, stamp)

	typed := make(map[string]bool)

	steps := []struct {
		columns []string
		fn      func(dataset.Value) (dataset.Value, error)
	}{
		{schema.PercentageFields(), percentageValue},
		{schema.PriceFields(), priceValue},
		{schema.DateFields(), dateValue},
	}

	for _, step := range steps {
		for _, col := range step.columns {
			if !ds.Has(col) {
				continue
			}

			if err := ds.MapColumn(col, step.fn); err != nil {
				return nil, err
			}

			typed[col] = true
		}
	}

	for _, col := range ds.Headers {
		if typed[col] {
			continue
		}

		if err := ds.MapColumn(col, trimValue); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func percentageValue(v dataset.Value) (dataset.Value, error) {
	s, ok := v.Text()
	if !ok {
		return dataset.Absent(), nil
	}

	f, ok := Percentage(s)
	if !ok {
		return dataset.Absent(), nil
	}

	return dataset.Number(f), nil
}

func priceValue(v dataset.Value) (dataset.Value, error) {
	if f, ok := v.Number(); ok {
		return dataset.Number(f), nil
	}

	s, ok := v.Text()
	if !ok {
		return dataset.Absent(), nil
	}

	f, ok := Price(s)
	if !ok {
		return dataset.Absent(), nil
	}

	return dataset.Number(f), nil
}

// dateValue keeps absent cells absent, matching how empty dates were
// carried through as blanks.
func dateValue(v dataset.Value) (dataset.Value, error) {
	s, ok := v.Text()
	if !ok {
		return v, nil
	}

	if Trim(s) == "" {
		return dataset.Absent(), nil
	}

	out, err := Date(s)
	if err != nil {
		return v, err
	}

	return dataset.Text(out), nil
}

func trimValue(v dataset.Value) (dataset.Value, error) {
	if s, ok := v.Text(); ok {
		return dataset.Text(Trim(s)), nil
	}

	return v, nil
}
