package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqprep/nanotrim/internal/config"
)

func newTestLogger(t *testing.T, logFile string) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = logFile

	l, err := NewLogger(&cfg)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	l.out = &out
	l.errOut = &errOut
	return l, &out, &errOut
}

func TestLogger_LevelsAndStreams(t *testing.T) {
	l, out, errOut := newTestLogger(t, "")
	defer l.Close()

	l.Info("hello %s", "world")
	l.Success("done")
	l.Warn("careful")
	l.Error("boom")

	assert.Contains(t, out.String(), "[INFO] hello world")
	assert.Contains(t, out.String(), "[SUCCESS] done")
	assert.Contains(t, out.String(), "[WARN] careful")
	assert.NotContains(t, out.String(), "[ERROR]")
	assert.Contains(t, errOut.String(), "[ERROR] boom")
}

func TestLogger_DebugGatedByVerbose(t *testing.T) {
	l, out, _ := newTestLogger(t, "")
	defer l.Close()

	l.Debug(false, "hidden")
	l.Debug(true, "shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[DEBUG] shown")
}

func TestLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, _, _ := newTestLogger(t, path)

	l.Info("to file")
	l.Error("also to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.TrimSpace(string(data))
	assert.Contains(t, lines, "[INFO] to file")
	assert.Contains(t, lines, "[ERROR] also to file")
	assert.NotContains(t, lines, "\033[", "file sink must be plain text")
}
