package pipeline

import (
	"fmt"
	"strings"
	"time"

	"sheetetl/internal/formatter"
)

// Result is the outcome for one listed file.
type Result struct {
	Key      string
	File     string
	State    State
	Err      error
	Cleanup  []error
	Duration time.Duration
}

// Failed reports whether the file ended in StateFailed.
func (r Result) Failed() bool {
	return r.State == StateFailed
}

// Summary collects the results of one batch run.
type Summary struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Results  []Result
	// WorkDirErr is set when the shared work directory could not be removed.
	WorkDirErr error
}

// Succeeded counts finalized files.
func (s *Summary) Succeeded() int {
	n := 0

	for _, r := range s.Results {
		if r.State == StateFinalized {
			n++
		}
	}

	return n
}

// Failed counts failed files.
func (s *Summary) Failed() int {
	n := 0

	for _, r := range s.Results {
		if r.Failed() {
			n++
		}
	}

	return n
}

// Report renders the per-file results as an aligned table followed by
// the totals.
func (s *Summary) Report() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Run %s: %d file(s), %d finalized, %d failed in %v\n",
		s.RunID, len(s.Results), s.Succeeded(), s.Failed(), s.Duration.Round(time.Millisecond))

	if len(s.Results) > 0 {
		rows := make([][]string, 0, len(s.Results))

		for _, r := range s.Results {
			kind, cause := "", ""
			if r.Err != nil {
				kind = string(KindOf(r.Err))
				cause = r.Err.Error()
			}

			if len(r.Cleanup) > 0 {
				cause = strings.TrimSpace(fmt.Sprintf("%s (cleanup: %d error(s))", cause, len(r.Cleanup)))
			}

			rows = append(rows, []string{r.File, r.State.String(), kind, cause})
		}

		sb.WriteString(formatter.Table([]string{"file", "state", "kind", "cause"}, rows))
	}

	if s.WorkDirErr != nil {
		fmt.Fprintf(&sb, "warning: work directory not removed: %v\n", s.WorkDirErr)
	}

	return sb.String()
}
