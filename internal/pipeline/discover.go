package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Recognized read-file suffixes, matched case-insensitively against the
// file name.
var readSuffixes = []string{".fastq.gz", ".fq.gz", ".fastq", ".fq"}

// ErrNoInputFiles is returned when discovery finds no read files under
// the input root.
var ErrNoInputFiles = errors.New("no FASTQ files found")

// Discover walks inputDir recursively, collects files with a recognized
// read suffix, and returns the paths sorted lexicographically for
// deterministic processing order. Walk errors (e.g. an unreadable
// subdirectory) abort discovery rather than silently dropping files.
// An empty result is an error.
func Discover(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if hasReadSuffix(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", inputDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoInputFiles, inputDir)
	}
	sort.Strings(files)
	return files, nil
}

func hasReadSuffix(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range readSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
