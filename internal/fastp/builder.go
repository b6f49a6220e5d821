package fastp

import (
	"strconv"

	"github.com/seqprep/nanotrim/internal/config"
	"github.com/seqprep/nanotrim/internal/naming"
)

// Build constructs the complete fastp argument slice for one sample.
// Pure construction: identical (cfg, sample) inputs always yield an
// identical slice, and no token ever passes through a shell.
//
// Policy, reproduced from the long-read pipeline this tool replaces:
//
//   - the engine's generic quality-score read filtering is always
//     disabled; the run relies on length, complexity, and poly-tail
//     trimming instead.
//   - adapter trimming is disabled unless an adapter FASTA is supplied.
//     --adapter_fasta itself re-activates trimming, so the disable flag
//     is dropped in that case.
//   - poly-G has explicit enable and disable forms, both always emitted.
//     poly-X has an enable form only (fastp exposes no
//     --disable_trim_poly_x), so a false flag emits nothing. That
//     asymmetry mirrors the engine's flag surface.
//   - report paths are appended only when reports are enabled; with no
//     --html/--json arguments the run produces no report artifacts.
func Build(cfg *config.Config, s naming.Sample) []string {
	args := make([]string, 0, 24)

	args = append(args,
		"-i", s.Path,
		"-o", s.TrimmedPath,
		"--thread", strconv.Itoa(cfg.Threads),
		"--qualified_quality_phred", strconv.Itoa(cfg.QualityPhred),
		"--length_required", strconv.Itoa(cfg.MinLength),
		"--low_complexity_filter",
		"--complexity_threshold", strconv.Itoa(cfg.Complexity),
		"--disable_quality_filtering",
	)

	if cfg.AdapterFasta != "" {
		args = append(args, "--adapter_fasta", cfg.AdapterFasta)
	} else {
		args = append(args, "--disable_adapter_trimming")
	}

	if cfg.TrimPolyG {
		args = append(args, "--trim_poly_g")
	} else {
		args = append(args, "--disable_trim_poly_g")
	}
	if cfg.TrimPolyX {
		args = append(args, "--trim_poly_x")
	}

	if cfg.Report {
		args = append(args,
			"--html", s.HTMLReportPath,
			"--json", s.JSONReportPath,
		)
	}

	return args
}
