// Package config holds runtime configuration: defaults, CLI flag
// registration, an optional TOML config-file overlay, and validation.
// Defaults match the legacy batch script for parity.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings for one batch run. It is populated by
// [DefaultConfig], overlaid by [Register]-ed flags and an optional TOML
// file, then validated once. After validation it is treated as immutable.
type Config struct {
	// Paths.
	InputDir  string
	OutputDir string

	// Engine parameters, passed through to fastp per sample.
	Threads      int    // Per-invocation parallelism. Default: 4.
	MinLength    int    // Length filter floor. Default: 1000.
	QualityPhred int    // Qualified quality phred floor. Default: 7.
	Complexity   int    // Complexity filter floor, 0-100. Default: 30.
	AdapterFasta string // Optional adapter reference; enables adapter trimming.
	TrimPolyG    bool   // Default: true. Cleared by --no-trim-poly-g.
	TrimPolyX    bool   // Default: true. Cleared by --no-trim-poly-x.
	Report       bool   // Default: true. Cleared by --no-report.

	// Batch behavior.
	Jobs      int    // Concurrent samples. Default: 1 (sequential).
	Verify    bool   // Gzip-verify trimmed outputs after each invocation.
	EngineBin string // Engine binary name or path. Default: "fastp".

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
	ConfigFile string    // Optional TOML defaults file.
}

// DefaultConfig returns a Config with all defaults. Used as the base
// before flag and config-file overrides apply.
func DefaultConfig() Config {
	return Config{
		Threads:      4,
		MinLength:    1000,
		QualityPhred: 7,
		Complexity:   30,
		TrimPolyG:    true,
		TrimPolyX:    true,
		Report:       true,
		Jobs:         1,
		EngineBin:    "fastp",
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks value ranges and, outside CheckOnly mode, that both
// directory paths were supplied. Filesystem checks live in
// [Config.ValidatePaths] so Validate stays pure.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Threads <= 0 {
		return fmt.Errorf("threads must be positive (got %d)", c.Threads)
	}
	if c.MinLength <= 0 {
		return fmt.Errorf("min-length must be positive (got %d)", c.MinLength)
	}
	if c.QualityPhred < 0 {
		return fmt.Errorf("quality must be non-negative (got %d)", c.QualityPhred)
	}
	if c.Complexity < 0 || c.Complexity > 100 {
		return fmt.Errorf("complexity must be between 0 and 100 (got %d)", c.Complexity)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}
	if c.EngineBin == "" {
		return errors.New("engine binary must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("both --input-dir and --output-dir are required")
	}
	return nil
}

// ValidatePaths checks the filesystem side of the configuration: the input
// root must be a readable directory and the adapter reference, when set,
// must exist. Called after Validate, before any processing starts.
func (c *Config) ValidatePaths() error {
	fi, err := os.Stat(c.InputDir)
	if err != nil {
		return fmt.Errorf("input directory %s: %w", c.InputDir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("input path %s is not a directory", c.InputDir)
	}

	if c.AdapterFasta != "" {
		if _, err := os.Stat(c.AdapterFasta); err != nil {
			return fmt.Errorf("adapter reference %s: %w", c.AdapterFasta, err)
		}
	}
	return nil
}
