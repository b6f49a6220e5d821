// Package check provides pre-batch dependency validation and the --check
// diagnostics mode for the external processing engine.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEngineNotFound is returned by CheckDeps when the engine binary is not
// on PATH. Detected once at batch start so a missing engine aborts before
// any sample is attempted.
var ErrEngineNotFound = errors.New("fastp not found on PATH")

// Logger is the minimal logging interface needed by RunCheck. Defined here
// rather than importing the logging package so check stays dependency-light
// and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps verifies the engine binary is resolvable. Returns
// ErrEngineNotFound (wrapped with the binary name) on failure.
func CheckDeps(binary string) error {
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%w (looked for %q)", ErrEngineNotFound, binary)
	}
	return nil
}

// RunCheck runs the --check flow: reports engine availability and version.
// Informational only; it does not stop on failure.
func RunCheck(binary string, log Logger) {
	log.Info("=== System Check ===")

	path, err := exec.LookPath(binary)
	if err != nil {
		log.Error("%s not found on PATH", binary)
		return
	}
	log.Success("%s: %s", binary, path)

	version := engineVersion(binary)
	if version == "" {
		log.Warn("%s found but --version failed", binary)
		return
	}
	log.Success("version: %s", version)
}

// engineVersion returns the first line fastp prints for --version, or ""
// when the probe fails. fastp writes its version banner to stderr.
func engineVersion(binary string) string {
	cmd := exec.Command(binary, "--version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return line
}
