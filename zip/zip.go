// Package zip packs resource files into a zip archive.
package zip

import (
	"archive/zip"
	"io"
	"path"
	"strings"
	"time"

	"github.com/timarques/eucatalog"
)

// epoch is the modification time recorded for every entry, so equal inputs
// produce identical archives.
var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// storedExtensions are already compressed and are stored as is.
var storedExtensions = map[string]bool{
	".png": true,
	".zip": true,
}

// Ensure Bundler implements eucatalog.Bundler at compile time.
var _ eucatalog.Bundler = (*Bundler)(nil)

// Bundler writes resource bundles as zip archives.
type Bundler struct{}

// NewBundler creates a new Bundler.
func NewBundler() *Bundler {
	return &Bundler{}
}

// Bundle writes files to w in the given order. Paths must be relative,
// slash separated and unique.
func (b *Bundler) Bundle(w io.Writer, files []eucatalog.BundleFile) error {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		name := path.Clean(f.Path)
		if f.Path == "" || path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") || strings.Contains(f.Path, `\`) {
			return eucatalog.Errorf(eucatalog.EINVALID, "invalid bundle path %q", f.Path)
		}
		if seen[name] {
			return eucatalog.Errorf(eucatalog.EDATA, "duplicate bundle path %q", name)
		}
		seen[name] = true
	}

	zw := zip.NewWriter(w)
	for _, f := range files {
		header := &zip.FileHeader{
			Name:     path.Clean(f.Path),
			Method:   zip.Deflate,
			Modified: epoch,
		}
		if storedExtensions[strings.ToLower(path.Ext(header.Name))] {
			header.Method = zip.Store
		}
		header.SetMode(0644)

		fw, err := zw.CreateHeader(header)
		if err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "add %s to bundle: %v", header.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "write %s to bundle: %v", header.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "finish bundle: %v", err)
	}
	return nil
}
