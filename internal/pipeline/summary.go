package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seqprep/nanotrim/internal/config"
	"github.com/seqprep/nanotrim/internal/display"
)

// SummaryFileName is the aggregate report written under the output root.
const SummaryFileName = "processing_summary.txt"

// WriteSummary renders the batch result into the aggregate summary file.
// The file is fully regenerated on each run (overwrite, never append) so
// consecutive runs leave exactly one summary. Pure formatting; returns the
// written path.
func WriteSummary(cfg *config.Config, result *BatchResult) (string, error) {
	path := filepath.Join(cfg.OutputDir, SummaryFileName)

	var b strings.Builder
	fmt.Fprintf(&b, "nanotrim processing summary\n")
	fmt.Fprintf(&b, "===========================\n\n")
	fmt.Fprintf(&b, "Run ID:         %s\n", result.RunID)
	fmt.Fprintf(&b, "Started:        %s\n", result.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "Input dir:      %s\n", cfg.InputDir)
	fmt.Fprintf(&b, "Output dir:     %s\n", cfg.OutputDir)
	fmt.Fprintf(&b, "Threads:        %d (x %d jobs)\n", cfg.Threads, cfg.Jobs)
	fmt.Fprintf(&b, "Min length:     %d\n", cfg.MinLength)
	fmt.Fprintf(&b, "Quality phred:  %d\n", cfg.QualityPhred)
	fmt.Fprintf(&b, "Complexity:     %d\n", cfg.Complexity)
	if cfg.AdapterFasta != "" {
		fmt.Fprintf(&b, "Adapter FASTA:  %s\n", cfg.AdapterFasta)
	} else {
		fmt.Fprintf(&b, "Adapter FASTA:  none (adapter trimming disabled)\n")
	}
	fmt.Fprintf(&b, "Poly-G trim:    %s\n", onOff(cfg.TrimPolyG))
	fmt.Fprintf(&b, "Poly-X trim:    %s\n", onOff(cfg.TrimPolyX))
	fmt.Fprintf(&b, "Reports:        %s\n", onOff(cfg.Report))

	fmt.Fprintf(&b, "\nProcessed: %d\n", result.Processed())
	fmt.Fprintf(&b, "Failed:    %d\n", result.Failed())
	fmt.Fprintf(&b, "Size:      %s in, %s out (%s)\n",
		display.FormatBytes(result.TotalInputBytes()),
		display.FormatBytes(result.TotalOutputBytes()),
		display.FormatBytesWithSign(result.SpaceDelta()))

	fmt.Fprintf(&b, "\nOutput files:\n")
	any := false
	for _, o := range result.Outcomes {
		if o.Status != StatusSuccess {
			continue
		}
		any = true
		if o.ReadsBefore != nil && o.ReadsAfter != nil {
			fmt.Fprintf(&b, "  %s (%d -> %d reads)\n", o.Sample.TrimmedPath, *o.ReadsBefore, *o.ReadsAfter)
		} else {
			fmt.Fprintf(&b, "  %s\n", o.Sample.TrimmedPath)
		}
	}
	if !any {
		fmt.Fprintf(&b, "  (none)\n")
	}

	if result.Failed() > 0 {
		fmt.Fprintf(&b, "\nFailed samples:\n")
		for _, o := range result.Outcomes {
			if o.Status != StatusFailure {
				continue
			}
			fmt.Fprintf(&b, "  %s: %v\n", o.Sample.ID, o.Err)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	return path, nil
}
