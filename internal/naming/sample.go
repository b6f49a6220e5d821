// Package naming derives canonical sample identifiers from input read
// files and builds the per-sample artifact paths under the output root.
package naming

import (
	"path/filepath"
	"strings"
)

// Subdirectories created under the output root. Every sample owns one
// file in each, keyed by its identifier.
const (
	TrimmedDir = "trimmed"
	ReportsDir = "reports"
	LogsDir    = "logs"
)

// Sample is one input read file and its derived artifact set. Constructed
// once per discovered file at orchestration time; immutable thereafter.
type Sample struct {
	// Path is the source read file.
	Path string
	// ID is the canonical sample identifier, possibly disambiguated by a
	// CollisionResolver.
	ID string

	TrimmedPath    string
	HTMLReportPath string
	JSONReportPath string
	LogPath        string
}

// SampleID returns the canonical sample identifier for an input file:
// the final path segment with the rightmost extension stripped, then a
// residual ".fastq"/".fq" stripped as well. The two-stage strip handles
// compressed and uncompressed inputs alike:
//
//	sample1.fastq.gz -> sample1
//	run1.fq          -> run1
//	sample.v2.fastq  -> sample.v2
//
// Deterministic, no side effects.
func SampleID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	ext := strings.ToLower(filepath.Ext(base))
	if ext == ".fastq" || ext == ".fq" {
		base = base[:len(base)-len(ext)]
	}
	return base
}

// NewSample builds the Sample for path with all artifact paths rooted at
// outputDir. id is normally SampleID(path), run through a
// CollisionResolver when duplicates are possible.
func NewSample(path, id, outputDir string) Sample {
	return Sample{
		Path:           path,
		ID:             id,
		TrimmedPath:    filepath.Join(outputDir, TrimmedDir, id+"_trimmed.fastq.gz"),
		HTMLReportPath: filepath.Join(outputDir, ReportsDir, id+"_fastp_report.html"),
		JSONReportPath: filepath.Join(outputDir, ReportsDir, id+"_fastp_report.json"),
		LogPath:        filepath.Join(outputDir, LogsDir, id+"_fastp.log"),
	}
}
