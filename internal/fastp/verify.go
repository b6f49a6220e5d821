package fastp

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

// VerifyGzip decompresses path end to end and discards the content,
// confirming the engine produced a complete gzip stream rather than a
// truncated one. Used by the --verify pass after each successful
// invocation.
func VerifyGzip(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	zr, err := pgzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s is not a gzip stream: %w", path, err)
	}
	if _, err := io.Copy(io.Discard, zr); err != nil {
		zr.Close()
		return fmt.Errorf("%s is truncated or corrupt: %w", path, err)
	}
	return zr.Close()
}
