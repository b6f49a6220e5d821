// Command nanotrim batch-trims long-read FASTQ files through fastp.
// It discovers read files under an input root, runs one engine invocation
// per sample, and writes trimmed outputs, reports, per-sample logs, and an
// aggregate summary under the output root.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seqprep/nanotrim/internal/check"
	"github.com/seqprep/nanotrim/internal/config"
	"github.com/seqprep/nanotrim/internal/display"
	"github.com/seqprep/nanotrim/internal/fastp"
	"github.com/seqprep/nanotrim/internal/logging"
	"github.com/seqprep/nanotrim/internal/pipeline"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// Exit codes: 0 full success, 1 fatal error before or during setup,
// 2 batch completed but one or more samples failed.
const exitPartialFailure = 2

func main() {
	cfg := config.DefaultConfig()

	root := &cobra.Command{
		Use:   "nanotrim",
		Short: "Batch quality control and trimming for long-read FASTQ files",
		Long: `nanotrim scans a directory for FASTQ files (.fastq, .fq, .fastq.gz,
.fq.gz), runs fastp on each sample, and collects trimmed reads, QC
reports, per-sample logs, and a consolidated processing summary.

The read-quality work itself (length and complexity filtering, poly-tail
trimming, optional adapter removal) is delegated entirely to fastp;
nanotrim orchestrates the batch and never aborts it over a single failed
sample.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	negations := config.Register(root.Flags(), &cfg)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := config.Finalize(cmd.Flags(), &cfg, negations); err != nil {
			return err
		}
		return run(&cfg)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nanotrim: %v\n", err)
		os.Exit(1)
	}
}

// run executes the validated configuration: diagnostics mode, or the full
// batch. Fatal errors are returned; per-sample failures surface through
// the summary and the process exit code.
func run(cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(cfg.EngineBin, log)
		return nil
	}

	if err := cfg.ValidatePaths(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", cfg.OutputDir, err)
	}
	// A missing engine aborts before any sample is attempted.
	if err := check.CheckDeps(cfg.EngineBin); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := fastp.CommandEngine{Binary: cfg.EngineBin}
	result, err := pipeline.Run(ctx, cfg, eng, log)
	if err != nil {
		return err
	}

	summaryPath, err := pipeline.WriteSummary(cfg, result)
	if err != nil {
		log.Error("%v", err)
	} else {
		log.Info("Summary: %s", summaryPath)
	}

	if result.Failed() > 0 {
		log.Error("%d of %d samples failed; see logs under %s",
			result.Failed(), len(result.Outcomes), cfg.OutputDir)
		os.Exit(exitPartialFailure)
	}
	return nil
}
