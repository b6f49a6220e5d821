package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seqprep/nanotrim/internal/config"
	"github.com/seqprep/nanotrim/internal/display"
	"github.com/seqprep/nanotrim/internal/fastp"
	"github.com/seqprep/nanotrim/internal/logging"
	"github.com/seqprep/nanotrim/internal/naming"
)

// Run is the top-level batch entry point: discover files, derive samples,
// process each with the engine, and return the aggregate result. A nil
// error means every sample was attempted; individual failures live in the
// result, not the error. Errors are fatal (discovery, output layout).
func Run(ctx context.Context, cfg *config.Config, eng fastp.Engine, log *logging.Logger) (*BatchResult, error) {
	files, err := Discover(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	for _, sub := range []string{naming.TrimmedDir, naming.ReportsDir, naming.LogsDir} {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating output layout: %w", err)
		}
	}

	// Duplicate identifiers (same stem under different subdirectories)
	// would overwrite each other's artifacts; the resolver disambiguates
	// them up front so every sample owns disjoint output paths.
	resolver := naming.NewCollisionResolver()
	samples := make([]naming.Sample, len(files))
	for i, path := range files {
		id := resolver.Resolve(path, naming.SampleID(path))
		samples[i] = naming.NewSample(path, id, cfg.OutputDir)
	}

	result := &BatchResult{
		RunID:    uuid.NewString(),
		Started:  time.Now(),
		Outcomes: make([]Outcome, len(samples)),
	}

	logBatchHeader(cfg, log, result.RunID, len(samples))

	// Worker pool over sample indexes. Each outcome lands in its discovery
	// slot, so attribution and summary order hold regardless of
	// scheduling. Jobs=1 degenerates to the sequential reference behavior.
	workers := cfg.Jobs
	if workers > len(samples) {
		workers = len(samples)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				result.Outcomes[i] = processSample(ctx, cfg, eng, log, samples[i], i+1, len(samples))
			}
		}()
	}

	interrupted := false
feed:
	for i := range samples {
		select {
		case jobs <- i:
		case <-ctx.Done():
			interrupted = true
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if interrupted {
		log.Warn("Interrupted; remaining samples were not processed")
	}
	// Samples never handed to a worker still get exactly one outcome.
	for i := range result.Outcomes {
		if result.Outcomes[i].Sample.Path == "" {
			result.Outcomes[i] = Outcome{
				Sample: samples[i],
				Status: StatusFailure,
				Err:    fmt.Errorf("not processed: %w", ctx.Err()),
			}
		}
	}

	logBatchSummary(log, result)
	return result, nil
}

// processSample handles one sample: stat input → build arguments → invoke
// engine → classify → optional verify and metrics parse. Failures are
// contained in the returned Outcome; nothing here aborts the batch.
func processSample(
	ctx context.Context,
	cfg *config.Config,
	eng fastp.Engine,
	log *logging.Logger,
	s naming.Sample,
	current, total int,
) Outcome {
	out := Outcome{Sample: s, Status: StatusFailure}

	if err := ctx.Err(); err != nil {
		out.Err = fmt.Errorf("not processed: %w", err)
		return out
	}

	log.Info("[%d/%d] %s", current, total, filepath.Base(s.Path))

	fi, err := os.Stat(s.Path)
	if err != nil {
		out.Err = fmt.Errorf("input file: %w", err)
		log.Error("%s: %v", s.ID, out.Err)
		return out
	}
	out.InputBytes = fi.Size()

	args := fastp.Build(cfg, s)
	log.Debug(cfg.Verbose, "  args: %v", args)

	start := time.Now()
	res := eng.Invoke(ctx, args, s.LogPath)
	out.Elapsed = time.Since(start)

	if res.Err != nil {
		if ctx.Err() != nil {
			// Killed mid-flight: partial output is invalid, not a success.
			os.Remove(s.TrimmedPath)
			out.Err = fmt.Errorf("interrupted: %w", ctx.Err())
			log.Warn("%s interrupted", s.ID)
			return out
		}
		out.Err = fmt.Errorf("engine exited with status %d (see %s)", res.ExitCode, s.LogPath)
		log.Error("%s failed: %v", s.ID, out.Err)
		return out
	}

	if cfg.Verify {
		if err := fastp.VerifyGzip(s.TrimmedPath); err != nil {
			out.Err = fmt.Errorf("output verification: %w", err)
			log.Error("%s: %v", s.ID, out.Err)
			return out
		}
	}

	out.Status = StatusSuccess

	if cfg.Report {
		if m, err := fastp.ParseMetrics(s.JSONReportPath); err != nil {
			// Metrics are best-effort; the sample stays successful.
			log.Warn("%s: read counts unavailable: %v", s.ID, err)
		} else {
			out.ReadsBefore = &m.ReadsBefore
			out.ReadsAfter = &m.ReadsAfter
		}
	}

	if ofi, err := os.Stat(s.TrimmedPath); err == nil {
		out.OutputBytes = ofi.Size()
	}

	if out.ReadsBefore != nil && out.ReadsAfter != nil {
		log.Success("%s: %d -> %d reads in %ds", s.ID, *out.ReadsBefore, *out.ReadsAfter, int(out.Elapsed.Seconds()))
	} else {
		log.Success("%s done in %ds", s.ID, int(out.Elapsed.Seconds()))
	}
	return out
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, runID string, total int) {
	log.Info("Run %s", runID)
	log.Info("Found %d read files", total)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	log.Info("Filters: min length %d, quality phred %d, complexity %d", cfg.MinLength, cfg.QualityPhred, cfg.Complexity)
	if cfg.AdapterFasta != "" {
		log.Info("Adapter trimming: %s", cfg.AdapterFasta)
	} else {
		log.Info("Adapter trimming: disabled")
	}
	log.Info("Poly-G trim: %s, Poly-X trim: %s", onOff(cfg.TrimPolyG), onOff(cfg.TrimPolyX))
	if !cfg.Report {
		log.Info("Reports: suppressed")
	}
	if cfg.Jobs > 1 {
		log.Info("Concurrency: %d jobs x %d threads = %d engine threads total", cfg.Jobs, cfg.Threads, cfg.Jobs*cfg.Threads)
	} else {
		log.Info("Threads: %d", cfg.Threads)
	}
}

func logBatchSummary(log *logging.Logger, result *BatchResult) {
	log.Info("==============================")
	if result.Failed() == 0 {
		log.Success("Done: %d processed, 0 failed", result.Processed())
	} else {
		log.Warn("Done: %d processed, %d failed (see per-sample logs)", result.Processed(), result.Failed())
	}
	if delta := result.SpaceDelta(); delta != 0 {
		log.Info("Size: %s in -> %s out (%s)",
			display.FormatBytes(result.TotalInputBytes()),
			display.FormatBytes(result.TotalOutputBytes()),
			display.FormatBytesWithSign(delta))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
