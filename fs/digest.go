package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/timarques/eucatalog"
)

// Digest returns the xxhash64 of data as 16 hex digits.
func Digest(data []byte) string {
	return format(xxhash.Sum64(data))
}

// DigestFile returns the xxhash64 of the file at path.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", eucatalog.Errorf(eucatalog.EIO, "open %s: %v", path, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", eucatalog.Errorf(eucatalog.EIO, "read %s: %v", path, err)
	}
	return format(h.Sum64()), nil
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
