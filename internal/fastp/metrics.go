package fastp

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Metrics is the subset of the engine's JSON report consumed by the batch
// summary.
type Metrics struct {
	ReadsBefore int64
	ReadsAfter  int64
}

// metricsDoc mirrors fastp's JSON layout. The before/after read counts are
// looked up by name (summary.before_filtering.total_reads and
// summary.after_filtering.total_reads) rather than by position in the
// document. Pointer fields distinguish absent keys from zero counts.
type metricsDoc struct {
	Summary struct {
		BeforeFiltering struct {
			TotalReads *int64 `json:"total_reads"`
		} `json:"before_filtering"`
		AfterFiltering struct {
			TotalReads *int64 `json:"total_reads"`
		} `json:"after_filtering"`
	} `json:"summary"`
}

// ParseMetrics reads the engine's JSON metrics file. Best effort by
// contract: callers treat any error as a missing-metrics warning, never a
// sample failure.
func ParseMetrics(path string) (*Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metrics: %w", err)
	}

	var doc metricsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing metrics: %w", err)
	}

	before := doc.Summary.BeforeFiltering.TotalReads
	after := doc.Summary.AfterFiltering.TotalReads
	if before == nil || after == nil {
		return nil, errors.New("metrics missing total_reads fields")
	}

	return &Metrics{ReadsBefore: *before, ReadsAfter: *after}, nil
}
