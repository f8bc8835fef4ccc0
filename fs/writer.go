// Package fs manages the build output directory: staged commits, direct
// atomic writes, timestamp based freshness and artifact digests.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/timarques/eucatalog"
)

// Writer writes files into the output directory. Each file is written to a
// temporary sibling and renamed into place.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteFile writes data to rel inside the base directory, creating parent
// directories as needed.
func (w *Writer) WriteFile(rel string, data []byte) error {
	fullPath, err := resolve(w.baseDir, rel)
	if err != nil {
		return err
	}
	return writeAtomic(fullPath, data)
}

// resolve joins rel onto base, rejecting absolute paths and paths that
// escape base.
func resolve(base, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", eucatalog.Errorf(eucatalog.EINVALID, "invalid output path %q", rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", eucatalog.Errorf(eucatalog.EINVALID, "path traversal in %q", rel)
	}
	return filepath.Join(base, clean), nil
}

func writeAtomic(fullPath string, data []byte) error {
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "create %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "create temp file for %s: %v", fullPath, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return eucatalog.Errorf(eucatalog.EIO, "write %s: %v", fullPath, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return eucatalog.Errorf(eucatalog.EIO, "chmod %s: %v", fullPath, err)
	}
	if err := tmp.Close(); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "close %s: %v", fullPath, err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "rename into %s: %v", fullPath, err)
	}
	return nil
}
