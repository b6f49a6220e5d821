package config

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// fileOverlay mirrors the configurable subset of Config as TOML keys.
// Pointer fields distinguish "absent" from zero values.
type fileOverlay struct {
	InputDir     *string `toml:"input_dir"`
	OutputDir    *string `toml:"output_dir"`
	Threads      *int    `toml:"threads"`
	MinLength    *int    `toml:"min_length"`
	QualityPhred *int    `toml:"quality"`
	Complexity   *int    `toml:"complexity"`
	AdapterFasta *string `toml:"adapter_fasta"`
	TrimPolyG    *bool   `toml:"trim_poly_g"`
	TrimPolyX    *bool   `toml:"trim_poly_x"`
	Report       *bool   `toml:"report"`
	Jobs         *int    `toml:"jobs"`
	Verify       *bool   `toml:"verify"`
	EngineBin    *string `toml:"fastp_bin"`
}

// ApplyFile overlays values from a TOML file onto cfg. A key only applies
// when its corresponding flag was not set on the command line, so the
// precedence is: explicit flags > config file > built-in defaults.
func ApplyFile(path string, fs *pflag.FlagSet, cfg *Config) error {
	var f fileOverlay
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return err
	}

	setString(fs, "input-dir", f.InputDir, &cfg.InputDir)
	setString(fs, "output-dir", f.OutputDir, &cfg.OutputDir)
	setInt(fs, "threads", f.Threads, &cfg.Threads)
	setInt(fs, "min-length", f.MinLength, &cfg.MinLength)
	setInt(fs, "quality", f.QualityPhred, &cfg.QualityPhred)
	setInt(fs, "complexity", f.Complexity, &cfg.Complexity)
	setString(fs, "adapter-fasta", f.AdapterFasta, &cfg.AdapterFasta)
	setBool(fs, "no-trim-poly-g", f.TrimPolyG, &cfg.TrimPolyG)
	setBool(fs, "no-trim-poly-x", f.TrimPolyX, &cfg.TrimPolyX)
	setBool(fs, "no-report", f.Report, &cfg.Report)
	setInt(fs, "jobs", f.Jobs, &cfg.Jobs)
	setBool(fs, "verify", f.Verify, &cfg.Verify)
	setString(fs, "fastp-bin", f.EngineBin, &cfg.EngineBin)
	return nil
}

func setString(fs *pflag.FlagSet, flag string, v *string, dst *string) {
	if v != nil && !fs.Changed(flag) {
		*dst = *v
	}
}

func setInt(fs *pflag.FlagSet, flag string, v *int, dst *int) {
	if v != nil && !fs.Changed(flag) {
		*dst = *v
	}
}

func setBool(fs *pflag.FlagSet, flag string, v *bool, dst *bool) {
	if v != nil && !fs.Changed(flag) {
		*dst = *v
	}
}
