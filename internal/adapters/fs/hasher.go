package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// ContentHash computes the XXHash digest of a byte buffer.
func ContentHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FileHash computes the XXHash digest of a file's contents without loading
// the whole file into memory.
func FileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}

// FormatHash renders a digest the way it appears in logs and cache keys.
func FormatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// FileLength returns the size of a file in bytes.
func FileLength(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	return info.Size(), nil
}
