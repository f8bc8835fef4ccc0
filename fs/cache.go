package fs

import (
	"os"
	"slices"
	"time"

	"github.com/timarques/eucatalog"
)

// Cache answers freshness questions about files in the output directory.
// Freshness is decided by modification times only.
type Cache struct {
	baseDir string
}

// NewCache creates a Cache over baseDir.
func NewCache(baseDir string) *Cache {
	return &Cache{baseDir: baseDir}
}

// Exists reports whether rel exists in the output directory.
func (c *Cache) Exists(rel string) (bool, error) {
	_, ok, err := c.ModTime(rel)
	return ok, err
}

// ModTime returns the modification time of rel, and false if it does not
// exist.
func (c *Cache) ModTime(rel string) (time.Time, bool, error) {
	fullPath, err := resolve(c.baseDir, rel)
	if err != nil {
		return time.Time{}, false, err
	}
	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, eucatalog.Errorf(eucatalog.EIO, "stat %s: %v", rel, err)
	}
	return info.ModTime(), true, nil
}

// IsStale reports whether target must be regenerated from source: target
// is missing or source was modified after it. source is a path outside the
// output directory and must exist.
func (c *Cache) IsStale(target, source string) (bool, error) {
	info, err := os.Stat(source)
	if err != nil {
		return false, eucatalog.Errorf(eucatalog.EIO, "stat source %s: %v", source, err)
	}
	built, ok, err := c.ModTime(target)
	if err != nil || !ok {
		return true, err
	}
	return info.ModTime().After(built), nil
}

// List returns the sorted names of regular files directly inside dir.
// A missing directory yields no names.
func (c *Cache) List(dir string) ([]string, error) {
	fullPath, err := resolve(c.baseDir, dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(fullPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EIO, "list %s: %v", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Remove deletes files or directories from the output directory. Missing
// entries are ignored.
func (c *Cache) Remove(rels ...string) error {
	for _, rel := range rels {
		fullPath, err := resolve(c.baseDir, rel)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(fullPath); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "remove %s: %v", rel, err)
		}
	}
	return nil
}
