// Package normalizer turns raw spreadsheet exports into datasets with
// canonical column names and typed values.
package normalizer

import (
	"fmt"
	"time"

	"sheetetl/internal/dataset"
)

// Processor validates and transforms datasets.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock overrides the clock used for the metadata columns.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.transformer.now = now
	}
}

// NewProcessor creates a new processor instance.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process normalizes a dataset loaded from fileName.
func (p *Processor) Process(ds *dataset.Dataset, fileName string) (*dataset.Dataset, error) {
	// 1. Validate the input data
	if err := p.validator.Validate(ds, fileName); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the data
	normalized, err := p.transformer.Transform(ds, fileName)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	return normalized, nil
}

// NormalizeFile reads the CSV at inputPath, normalizes it and writes the
// result to outputPath. Nothing is left at outputPath on failure.
func (p *Processor) NormalizeFile(inputPath, outputPath, fileName string) error {
	ds, err := dataset.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", inputPath, err)
	}

	normalized, err := p.Process(ds, fileName)
	if err != nil {
		return err
	}

	if err := normalized.WriteFile(outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputPath, err)
	}

	return nil
}
