package normalizer

import (
	"errors"
	"fmt"

	"sheetetl/internal/dataset"
)

// Validation errors.
var (
	ErrNilDataset      = errors.New("dataset is nil")
	ErrMissingFileName = errors.New("missing source file name")
)

// Validator checks that a dataset can be normalized.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the dataset structure and the originating file name.
func (v *Validator) Validate(ds *dataset.Dataset, fileName string) error {
	if ds == nil {
		return ErrNilDataset
	}

	if fileName == "" {
		return ErrMissingFileName
	}

	if err := ds.Validate(); err != nil {
		return fmt.Errorf("malformed dataset: %w", err)
	}

	return nil
}
