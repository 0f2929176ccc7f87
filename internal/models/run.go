package models

import (
	"fmt"
	"time"
)

// RunRequest carries everything the caller supplies for one archival run.
// The caller validates StartDate <= EndDate before handing it over.
type RunRequest struct {
	Identifiers []string
	StartDate   time.Time
	EndDate     time.Time
	Categories  []Category
	Bucket      string
}

// RunOutcome classifies how a run terminated.
type RunOutcome string

const (
	// OutcomeCompleted means the processing loop ran to the end.
	OutcomeCompleted RunOutcome = "completed"
	// OutcomeNoDocuments means selection produced zero units.
	OutcomeNoDocuments RunOutcome = "no_matching_documents"
	// OutcomeNoValidIdentifiers means every metadata fetch failed, so the
	// run ended before selection.
	OutcomeNoValidIdentifiers RunOutcome = "no_valid_identifiers"
)

// FailureKind locates where inside a unit the failure happened.
type FailureKind string

const (
	FailureResolve FailureKind = "resolve"
	FailureFetch   FailureKind = "fetch"
	FailureDecode  FailureKind = "decode"
	FailureRender  FailureKind = "render"
	FailureUpload  FailureKind = "upload"
)

// UnitError is a contained per-unit failure: the kind plus the wrapped cause.
type UnitError struct {
	Kind FailureKind
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// UnitOutcome records the result of one document reference passing through
// the pipeline. Err is nil on success; Key is set whenever an upload was
// attempted.
type UnitOutcome struct {
	Ref DocumentRef
	Key string
	Err *UnitError
}

// RunProgress is a snapshot emitted after every processed unit, in
// processing order.
type RunProgress struct {
	Total     int
	Processed int
	Succeeded int
	Failed    int
}

// Fraction reports completion in [0,1].
func (p RunProgress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.Total)
}

// Status renders the human-readable "processed/total" string.
func (p RunProgress) Status() string {
	return fmt.Sprintf("%d/%d", p.Processed, p.Total)
}

// RunResult is the final accounting for one run. Owned by the orchestrator
// while the run is live; never persisted.
type RunResult struct {
	Outcome   RunOutcome
	Total     int
	Processed int
	Succeeded int
	Failed    int
	Units     []UnitOutcome
}

// Summary renders the final human-readable tally.
func (r *RunResult) Summary() string {
	return fmt.Sprintf("total: %d, processed: %d, succeeded: %d, failed: %d",
		r.Total, r.Processed, r.Succeeded, r.Failed)
}
