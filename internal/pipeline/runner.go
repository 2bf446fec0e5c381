// Package pipeline runs the batch: list the source prefix, then take each
// spreadsheet through download, conversion, staging, normalization and
// final upload, one file at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sheetetl/internal/config"
	"sheetetl/internal/logger"
	"sheetetl/internal/storage"
)

// Run errors.
var (
	// ErrList is returned by Run when the source prefix cannot be listed.
	ErrList = errors.New("listing source files failed")
	// ErrUnsafeKey marks a listed key whose base name cannot be used as a
	// local file name.
	ErrUnsafeKey = errors.New("key has no usable file name")
)

// Converter turns a spreadsheet into a CSV file.
type Converter interface {
	Convert(src, dst string) error
}

// Normalizer rewrites a staged CSV into its normalized form.
type Normalizer interface {
	NormalizeFile(inputPath, outputPath, fileName string) error
}

// Runner executes batch runs against one bucket.
type Runner struct {
	store    storage.Gateway
	conv     Converter
	norm     Normalizer
	logger   *logger.Logger
	bucket   string
	prefixes config.PrefixConfig
	workDir  string
	newID    func() string
}

// NewRunner wires a runner from configuration and its collaborators.
func NewRunner(cfg *config.Config, store storage.Gateway, conv Converter, norm Normalizer, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Discard()
	}

	return &Runner{
		store:    store,
		conv:     conv,
		norm:     norm,
		logger:   log,
		bucket:   cfg.Storage.Bucket,
		prefixes: cfg.Storage.Prefixes,
		workDir:  cfg.Processing.WorkDir,
		newID:    uuid.NewString,
	}
}

// Run processes every object under the source prefix. Per-file failures
// are recorded in the summary and never stop the batch; the returned
// error is non-nil only when the batch could not start or listing failed.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{RunID: r.newID(), Started: time.Now()}
	log := r.logger.With("run_id", sum.RunID)

	defer func() {
		sum.Duration = time.Since(sum.Started)
	}()

	if err := os.MkdirAll(r.workDir, 0755); err != nil {
		return sum, fmt.Errorf("failed to create work directory: %w", err)
	}

	defer func() {
		// Non-recursive: anything a file's cleanup left behind keeps the
		// directory around and surfaces here.
		if err := os.Remove(r.workDir); err != nil && !errors.Is(err, os.ErrNotExist) {
			sum.WorkDirErr = err
			log.Warn(fmt.Sprintf("Failed to remove work directory %s: %v", r.workDir, err))
		}
	}()

	keys, err := r.store.List(ctx, r.bucket, r.prefixes.Source)
	if err != nil {
		log.Error(fmt.Sprintf("Error listing files: %v", err))
		return sum, fmt.Errorf("%w: %w", ErrList, err)
	}

	if len(keys) == 0 {
		log.Info("No Excel files found for processing", "bucket", r.bucket, "prefix", r.prefixes.Source)
		return sum, nil
	}

	log.Info(fmt.Sprintf("Found %d file(s) to process", len(keys)))

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			log.Warn(fmt.Sprintf("Run interrupted, %d file(s) not started: %v", len(keys)-len(sum.Results), err))
			break
		}

		sum.Results = append(sum.Results, r.processFile(ctx, log, key))
	}

	return sum, nil
}

// processFile moves one key through every state. Its local artifacts are
// removed before it returns whatever state was reached.
func (r *Runner) processFile(ctx context.Context, log *logger.Logger, key string) (res Result) {
	name := path.Base(key)

	switch name {
	case ".", "..", "/":
		res = Result{Key: key, File: name, State: StateFailed}
		res.Err = &StageError{Kind: KindStorage, State: StateListed, Err: fmt.Errorf("%w: %q", ErrUnsafeKey, key)}
		log.Error(fmt.Sprintf("Skipping %q: %v", key, res.Err), "kind", string(KindStorage))

		return res
	}

	base := strings.TrimSuffix(name, path.Ext(name))
	csvName := base + ".csv"
	normName := "normalized_" + csvName

	localSheet := filepath.Join(r.workDir, name)
	localCSV := filepath.Join(r.workDir, csvName)
	localNorm := filepath.Join(r.workDir, normName)

	log = log.With("file", name)
	start := time.Now()
	res = Result{Key: key, File: name, State: StateListed}

	defer func() {
		res.Cleanup = r.cleanup(log, res.State, localSheet, localCSV, localNorm)
		res.Duration = time.Since(start)
	}()

	log.Info(fmt.Sprintf("Processing file: %s", name))

	fail := func(kind Kind, err error) Result {
		res.Err = &StageError{Kind: kind, State: res.State, Err: err}
		res.State = StateFailed
		log.Error(fmt.Sprintf("Error processing %s: %v", name, res.Err), "kind", string(kind))

		return res
	}

	if err := r.store.Download(ctx, r.bucket, key, localSheet); err != nil {
		return fail(KindStorage, err)
	}

	res.State = StateDownloaded

	if err := r.conv.Convert(localSheet, localCSV); err != nil {
		return fail(KindConversion, err)
	}

	res.State = StateConverted

	if err := r.store.Upload(ctx, localCSV, r.bucket, storage.Key(r.prefixes.Staging, csvName)); err != nil {
		return fail(KindStorage, err)
	}

	res.State = StateStaged

	if err := r.norm.NormalizeFile(localCSV, localNorm, name); err != nil {
		return fail(KindNormalization, err)
	}

	res.State = StateNormalized

	if err := r.store.Upload(ctx, localNorm, r.bucket, storage.Key(r.prefixes.Destination, normName)); err != nil {
		return fail(KindStorage, err)
	}

	res.State = StateFinalized
	log.Info(fmt.Sprintf("Successfully processed %s", name))

	return res
}

// cleanup removes a file's local artifacts. Paths that were never
// created are ignored.
func (r *Runner) cleanup(log *logger.Logger, state State, paths ...string) []error {
	var errs []error

	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			se := &StageError{Kind: KindCleanup, State: state, Err: err}
			errs = append(errs, se)
			log.Warn(fmt.Sprintf("Failed to remove %s: %v", p, err))
		}
	}

	return errs
}
