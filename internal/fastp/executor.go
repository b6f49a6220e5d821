package fastp

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// Result holds the outcome of a single engine invocation.
type Result struct {
	// ExitCode is the engine's exit status; -1 when the process could not
	// be started or was killed by a signal.
	ExitCode int
	// Err is non-nil when the invocation did not complete with status 0.
	Err error
}

// Engine is the port to the external processing engine. Invoke runs one
// invocation with the given argument list, capturing all engine output to
// logPath. The production implementation is [CommandEngine]; tests
// substitute in-process stubs.
type Engine interface {
	Invoke(ctx context.Context, args []string, logPath string) Result
}

// CommandEngine invokes an engine binary as a subprocess. The subprocess
// inherits ctx: cancellation kills an in-flight invocation.
type CommandEngine struct {
	// Binary is the engine executable name or path (normally "fastp").
	Binary string
}

// Invoke runs one engine subprocess. Combined stdout and stderr are
// written to logPath, which is truncated first so re-runs leave exactly
// one log per sample.
func (e CommandEngine) Invoke(ctx context.Context, args []string, logPath string) Result {
	logFile, err := os.Create(logPath)
	if err != nil {
		return Result{ExitCode: -1, Err: err}
	}
	defer logFile.Close()

	cmd := exec.CommandContext(ctx, e.Binary, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return Result{ExitCode: code, Err: err}
	}
	return Result{}
}
