package pipeline

import (
	"time"

	"github.com/seqprep/nanotrim/internal/naming"
)

// Status classifies a sample outcome.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

// Outcome is the result of processing one sample. Created once by the
// runner and never mutated afterwards.
type Outcome struct {
	Sample naming.Sample
	Status Status

	// Read counts parsed from the engine's JSON metrics; nil when metrics
	// were not requested, missing, or malformed.
	ReadsBefore *int64
	ReadsAfter  *int64

	// Err carries the failure detail (engine exit status, log reference).
	Err error

	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// BatchResult aggregates one Outcome per discovered sample, in discovery
// order. Counts and byte totals are reductions over the outcome slice
// rather than counters mutated during the run, so concurrent workers never
// share mutable aggregate state.
type BatchResult struct {
	RunID    string
	Started  time.Time
	Outcomes []Outcome
}

// Processed returns the number of successfully processed samples.
func (r *BatchResult) Processed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusSuccess {
			n++
		}
	}
	return n
}

// Failed returns the number of failed samples.
func (r *BatchResult) Failed() int {
	return len(r.Outcomes) - r.Processed()
}

// TotalInputBytes sums the source file sizes of all attempted samples.
func (r *BatchResult) TotalInputBytes() int64 {
	var n int64
	for _, o := range r.Outcomes {
		n += o.InputBytes
	}
	return n
}

// TotalOutputBytes sums the trimmed output sizes of successful samples.
func (r *BatchResult) TotalOutputBytes() int64 {
	var n int64
	for _, o := range r.Outcomes {
		n += o.OutputBytes
	}
	return n
}

// SpaceDelta returns output minus input bytes; negative when trimming
// shrank the data.
func (r *BatchResult) SpaceDelta() int64 {
	return r.TotalOutputBytes() - r.TotalInputBytes()
}
