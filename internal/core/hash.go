package core

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/kilupskalvis/unify/internal/models"
)

// hashChunkSize is the read granularity for streaming file hashing, so
// arbitrarily large files never need full buffering.
const hashChunkSize = 64 * 1024

// HashFile fingerprints a file's bytes with a streaming 64-bit xxhash.
func HashFile(path string) (models.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	d := xxhash.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			d.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return models.Fingerprint(d.Sum64()), nil
}

// HashBytes fingerprints in-memory content with the same function as
// HashFile, so a merged result hashes identically before and after it
// is written back to disk.
func HashBytes(content []byte) models.Fingerprint {
	return models.Fingerprint(xxhash.Sum64(content))
}
