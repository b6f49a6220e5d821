package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqprep/nanotrim/internal/config"
	"github.com/seqprep/nanotrim/internal/fastp"
	"github.com/seqprep/nanotrim/internal/logging"
	"github.com/seqprep/nanotrim/internal/naming"
)

// --- Discover tests ---

func TestDiscover_SupportedSuffixes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.fastq")
	touch(t, dir, "b.fq")
	touch(t, dir, "c.fastq.gz")
	touch(t, dir, "d.fq.gz")
	touch(t, dir, "notes.txt")
	touch(t, dir, "archive.gz")
	touch(t, dir, "seqs.fasta")

	files, err := Discover(dir)
	require.NoError(t, err)

	want := []string{"a.fastq", "b.fq", "c.fastq.gz", "d.fq.gz"}
	assert.Equal(t, want, basenames(files))
}

func TestDiscover_EmptyDir(t *testing.T) {
	_, err := Discover(t.TempDir())
	assert.ErrorIs(t, err, ErrNoInputFiles)
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "run2"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "run1"), 0o755))
	touch(t, filepath.Join(dir, "run2"), "z.fastq")
	touch(t, filepath.Join(dir, "run1"), "a.fq.gz")
	touch(t, dir, "top.fastq.gz")

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for i := 1; i < len(files); i++ {
		assert.LessOrEqual(t, files[i-1], files[i], "discovery order must be sorted")
	}
}

func TestDiscover_CaseInsensitiveSuffix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "UPPER.FASTQ")
	touch(t, dir, "Mixed.Fq.Gz")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

// --- stub engine ---

// stubEngine implements fastp.Engine in-process. It mimics the external
// contract: writes the per-sample log, creates the -o output, honors
// --json/--html when present, and fails for configured inputs.
type stubEngine struct {
	mu      sync.Mutex
	invoked [][]string

	failFor map[string]bool // input base name → nonzero exit
	metrics string          // JSON body for the --json path; empty = write nothing
}

func (e *stubEngine) Invoke(ctx context.Context, args []string, logPath string) fastp.Result {
	e.mu.Lock()
	e.invoked = append(e.invoked, append([]string(nil), args...))
	e.mu.Unlock()

	_ = os.WriteFile(logPath, []byte("stub engine run\n"), 0o644)

	if e.failFor[filepath.Base(argValue(args, "-i"))] {
		return fastp.Result{ExitCode: 1, Err: errors.New("exit status 1")}
	}

	if out := argValue(args, "-o"); out != "" {
		_ = os.WriteFile(out, []byte("trimmed"), 0o644)
	}
	if html := argValue(args, "--html"); html != "" {
		_ = os.WriteFile(html, []byte("<html></html>"), 0o644)
	}
	if j := argValue(args, "--json"); j != "" && e.metrics != "" {
		_ = os.WriteFile(j, []byte(e.metrics), 0o644)
	}
	return fastp.Result{}
}

func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

const stubMetrics = `{
	"summary": {
		"before_filtering": {"total_reads": 1000},
		"after_filtering": {"total_reads": 850}
	}
}`

func testSetup(t *testing.T, inputs ...string) (*config.Config, *logging.Logger) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.InputDir = t.TempDir()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.ColorMode = config.ColorNever
	for _, name := range inputs {
		touch(t, cfg.InputDir, name)
	}

	log, err := logging.NewLogger(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return &cfg, log
}

// --- Run tests ---

func TestRun_MetricsParsed(t *testing.T) {
	cfg, log := testSetup(t, "sample1.fastq.gz")
	eng := &stubEngine{metrics: stubMetrics}

	result, err := Run(context.Background(), cfg, eng, log)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)

	o := result.Outcomes[0]
	assert.Equal(t, StatusSuccess, o.Status)
	require.NotNil(t, o.ReadsBefore)
	require.NotNil(t, o.ReadsAfter)
	assert.Equal(t, int64(1000), *o.ReadsBefore)
	assert.Equal(t, int64(850), *o.ReadsAfter)
}

func TestRun_MissingMetricsIsNotFailure(t *testing.T) {
	cfg, log := testSetup(t, "sample1.fastq")
	eng := &stubEngine{} // exits 0 but writes no JSON

	result, err := Run(context.Background(), cfg, eng, log)
	require.NoError(t, err)

	o := result.Outcomes[0]
	assert.Equal(t, StatusSuccess, o.Status)
	assert.Nil(t, o.ReadsBefore)
	assert.Nil(t, o.ReadsAfter)
	assert.Equal(t, 1, result.Processed())
}

func TestRun_MiddleSampleFailureDoesNotAbortBatch(t *testing.T) {
	cfg, log := testSetup(t, "a.fastq", "b.fastq", "c.fastq")
	eng := &stubEngine{metrics: stubMetrics, failFor: map[string]bool{"b.fastq": true}}

	result, err := Run(context.Background(), cfg, eng, log)
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, 2, result.Processed())
	assert.Equal(t, 1, result.Failed())
	assert.Len(t, eng.invoked, 3, "remaining samples must still be attempted")

	// Outcomes stay in discovery order and attribution holds.
	assert.Equal(t, "a", result.Outcomes[0].Sample.ID)
	assert.Equal(t, StatusSuccess, result.Outcomes[0].Status)
	assert.Equal(t, "b", result.Outcomes[1].Sample.ID)
	assert.Equal(t, StatusFailure, result.Outcomes[1].Status)
	assert.ErrorContains(t, result.Outcomes[1].Err, "status 1")
	assert.Equal(t, "c", result.Outcomes[2].Sample.ID)
	assert.Equal(t, StatusSuccess, result.Outcomes[2].Status)

	// The failed sample's log still exists for diagnosis.
	assert.FileExists(t, result.Outcomes[1].Sample.LogPath)
}

func TestRun_DuplicateSampleIDsDisambiguated(t *testing.T) {
	cfg, log := testSetup(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.InputDir, "run1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.InputDir, "run2"), 0o755))
	touch(t, filepath.Join(cfg.InputDir, "run1"), "sample1.fastq.gz")
	touch(t, filepath.Join(cfg.InputDir, "run2"), "sample1.fastq.gz")

	eng := &stubEngine{}
	result, err := Run(context.Background(), cfg, eng, log)
	require.NoError(t, err)

	ids := []string{result.Outcomes[0].Sample.ID, result.Outcomes[1].Sample.ID}
	assert.Equal(t, []string{"sample1", "sample1_dup1"}, ids)
	assert.NotEqual(t, result.Outcomes[0].Sample.TrimmedPath, result.Outcomes[1].Sample.TrimmedPath)
}

func TestRun_ConcurrentJobs(t *testing.T) {
	cfg, log := testSetup(t, "a.fastq", "b.fastq", "c.fastq", "d.fastq", "e.fastq")
	cfg.Jobs = 3
	eng := &stubEngine{metrics: stubMetrics}

	result, err := Run(context.Background(), cfg, eng, log)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Processed())
	// Attribution must survive concurrent scheduling.
	want := []string{"a", "b", "c", "d", "e"}
	for i, o := range result.Outcomes {
		assert.Equal(t, want[i], o.Sample.ID)
		assert.Equal(t, StatusSuccess, o.Status)
	}
}

func TestRun_EndToEndLayout(t *testing.T) {
	cfg, log := testSetup(t, "a.fastq", "b.fq.gz")
	cfg.MinLength = 500
	cfg.QualityPhred = 10
	cfg.TrimPolyG = true
	cfg.TrimPolyX = false
	eng := &stubEngine{metrics: stubMetrics}

	result, err := Run(context.Background(), cfg, eng, log)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed())
	assert.Equal(t, 0, result.Failed())

	for _, name := range []string{"a", "b"} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "trimmed", name+"_trimmed.fastq.gz"))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "reports", name+"_fastp_report.html"))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "reports", name+"_fastp_report.json"))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "logs", name+"_fastp.log"))
	}

	// The poly-X flag is off: no enable form may appear in any invocation.
	for _, args := range eng.invoked {
		assert.NotContains(t, args, "--trim_poly_x")
		assert.Contains(t, args, "--trim_poly_g")
	}

	path, err := WriteSummary(cfg, result)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Processed: 2")
	assert.Contains(t, content, "Failed:    0")
	assert.Contains(t, content, "a_trimmed.fastq.gz")
	assert.Contains(t, content, "b_trimmed.fastq.gz")
	assert.Contains(t, content, "1000 -> 850 reads")
}

func TestRun_RerunOverwritesWithoutResidue(t *testing.T) {
	cfg, log := testSetup(t, "sample1.fastq")
	eng := &stubEngine{metrics: stubMetrics}

	for i := 0; i < 2; i++ {
		result, err := Run(context.Background(), cfg, eng, log)
		require.NoError(t, err)
		_, err = WriteSummary(cfg, result)
		require.NoError(t, err)
	}

	// Exactly one artifact set per sample after two consecutive runs.
	for dir, want := range map[string]int{"trimmed": 1, "reports": 2, "logs": 1} {
		entries, err := os.ReadDir(filepath.Join(cfg.OutputDir, dir))
		require.NoError(t, err)
		assert.Len(t, entries, want, dir)
	}
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"trimmed", "reports", "logs", SummaryFileName}, names)
}

func TestRun_CancelledContextMarksRemainingFailed(t *testing.T) {
	cfg, log := testSetup(t, "a.fastq", "b.fastq", "c.fastq")
	eng := &stubEngine{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before the batch starts

	result, err := Run(ctx, cfg, eng, log)
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 3, "every discovered sample gets exactly one outcome")
	assert.Equal(t, 0, result.Processed())
	for _, o := range result.Outcomes {
		assert.Equal(t, StatusFailure, o.Status)
		assert.NotEmpty(t, o.Sample.Path)
	}
}

// --- BatchResult tests ---

func TestBatchResult_Reductions(t *testing.T) {
	r := BatchResult{Outcomes: []Outcome{
		{Status: StatusSuccess, InputBytes: 1000, OutputBytes: 600},
		{Status: StatusFailure, InputBytes: 500},
		{Status: StatusSuccess, InputBytes: 2000, OutputBytes: 1500},
	}}

	assert.Equal(t, 2, r.Processed())
	assert.Equal(t, 1, r.Failed())
	assert.Equal(t, int64(3500), r.TotalInputBytes())
	assert.Equal(t, int64(2100), r.TotalOutputBytes())
	assert.Equal(t, int64(-1400), r.SpaceDelta())
}

// --- WriteSummary tests ---

func TestWriteSummary_Overwrites(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InputDir = "/in"
	cfg.OutputDir = t.TempDir()

	first := &BatchResult{RunID: "run-one"}
	_, err := WriteSummary(&cfg, first)
	require.NoError(t, err)

	second := &BatchResult{RunID: "run-two"}
	path, err := WriteSummary(&cfg, second)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run-two")
	assert.NotContains(t, string(data), "run-one", "summary must be regenerated, not appended")
}

func TestWriteSummary_ListsFailures(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InputDir = "/in"
	cfg.OutputDir = t.TempDir()

	result := &BatchResult{Outcomes: []Outcome{
		{Sample: sampleNamed("ok", cfg.OutputDir), Status: StatusSuccess},
		{Sample: sampleNamed("bad", cfg.OutputDir), Status: StatusFailure, Err: errors.New("engine exited with status 1")},
	}}

	path, err := WriteSummary(&cfg, result)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "Failed samples:")
	assert.Contains(t, content, "bad: engine exited with status 1")
}

// --- Helpers ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("@read1\nACGT\n+\nIIII\n"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func sampleNamed(id, outputDir string) naming.Sample {
	return naming.NewSample("/in/"+id+".fastq", id, outputDir)
}
