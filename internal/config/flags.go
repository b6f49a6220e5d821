package config

// This file registers CLI flags and applies them to Config. Negated flags
// (--no-trim-poly-g, --no-report, ...) are captured separately and applied
// in Finalize so that defaults hold unless the user passes the flag, and so
// a TOML config file can sit between defaults and explicit flags.

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Negations holds inverted boolean flags that are applied after parsing.
// The public flag surface exposes the "no-" form (trimming and reports are
// on by default); Config stores the positive form.
type Negations struct {
	NoTrimPolyG bool
	NoTrimPolyX bool
	NoReport    bool
	colorFlag   string
}

// Register wires every flag onto fs, binding directly into cfg where the
// flag and field agree and into the returned Negations otherwise.
func Register(fs *pflag.FlagSet, cfg *Config) *Negations {
	n := &Negations{}

	fs.StringVarP(&cfg.InputDir, "input-dir", "i", "", "directory to scan for FASTQ files (required)")
	fs.StringVarP(&cfg.OutputDir, "output-dir", "o", "", "directory for trimmed output, reports and logs (required)")

	fs.IntVarP(&cfg.Threads, "threads", "t", cfg.Threads, "worker threads per fastp invocation")
	fs.IntVarP(&cfg.MinLength, "min-length", "l", cfg.MinLength, "discard reads shorter than this")
	fs.IntVarP(&cfg.QualityPhred, "quality", "q", cfg.QualityPhred, "qualified quality phred threshold")
	fs.IntVarP(&cfg.Complexity, "complexity", "c", cfg.Complexity, "complexity filter threshold (0-100)")
	fs.StringVarP(&cfg.AdapterFasta, "adapter-fasta", "a", "", "adapter reference FASTA; enables adapter trimming")
	fs.BoolVar(&n.NoTrimPolyG, "no-trim-poly-g", false, "disable poly-G tail trimming")
	fs.BoolVar(&n.NoTrimPolyX, "no-trim-poly-x", false, "disable poly-X tail trimming")
	fs.BoolVar(&n.NoReport, "no-report", false, "suppress per-sample HTML/JSON reports")

	fs.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "samples to process concurrently (total engine threads = jobs x threads)")
	fs.BoolVar(&cfg.Verify, "verify", false, "verify trimmed outputs are complete gzip streams")
	fs.StringVar(&cfg.EngineBin, "fastp-bin", cfg.EngineBin, "fastp binary name or path")

	fs.StringVar(&cfg.ConfigFile, "config", "", "TOML file with default settings")
	fs.StringVar(&cfg.LogFile, "log", "", "tee console logs to this file")
	fs.StringVar(&n.colorFlag, "color", string(cfg.ColorMode), "colored output: auto|always|never")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "check fastp availability and exit")

	return n
}

// Finalize applies the parsed flag state to cfg: the TOML overlay for flags
// the user did not set, then the negated flags, then validation. Paths are
// normalized here so the rest of the program never sees trailing slashes.
func Finalize(fs *pflag.FlagSet, cfg *Config, n *Negations) error {
	if cfg.ConfigFile != "" {
		if err := ApplyFile(cfg.ConfigFile, fs, cfg); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}

	if n.NoTrimPolyG {
		cfg.TrimPolyG = false
	}
	if n.NoTrimPolyX {
		cfg.TrimPolyX = false
	}
	if n.NoReport {
		cfg.Report = false
	}
	cfg.ColorMode = ColorMode(n.colorFlag)

	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)

	return cfg.Validate()
}
