package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/timarques/eucatalog"
)

// Stage collects files in a temporary directory and moves them into the
// output directory on Commit. Files named last in Commit are moved after
// all others, so their presence implies everything else was committed.
type Stage struct {
	baseDir string
	name    string
	replace []string
}

// NewStage creates a new Stage.
// baseDir is the parent directory, name is the output directory name.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewStage(baseDir, name string) *Stage {
	return &Stage{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *Stage) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Stage) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Begin discards leftovers of an earlier aborted stage.
func (s *Stage) Begin() error {
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "clear staging directory: %v", err)
	}
	return nil
}

// WriteFile stages data at rel.
func (s *Stage) WriteFile(rel string, data []byte) error {
	fullPath, err := resolve(s.tempDir(), rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "create staging directory: %v", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "stage %s: %v", rel, err)
	}
	return nil
}

// Replace marks an output subdirectory whose current contents are removed
// on Commit before staged files are moved in.
func (s *Stage) Replace(dir string) {
	s.replace = append(s.replace, dir)
}

// Commit moves staged files into the output directory, the files in last
// after all others and in the given order, then removes the staging
// directory. The files in last are touched so they are never older than
// the files committed with them.
func (s *Stage) Commit(last ...string) error {
	for _, dir := range s.replace {
		fullPath, err := resolve(s.finalDir(), dir)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(fullPath); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "clear %s: %v", dir, err)
		}
	}

	files, err := s.staged()
	if err != nil {
		return err
	}
	touch := make(map[string]bool, len(last))
	for _, rel := range last {
		rel = filepath.Clean(filepath.FromSlash(rel))
		if i := slices.Index(files, rel); i >= 0 {
			files = append(slices.Delete(files, i, i+1), rel)
			touch[rel] = true
		}
	}

	for _, rel := range files {
		dst := filepath.Join(s.finalDir(), rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "create %s: %v", filepath.Dir(dst), err)
		}
		if err := os.Rename(filepath.Join(s.tempDir(), rel), dst); err != nil {
			return eucatalog.Errorf(eucatalog.EIO, "commit %s: %v", rel, err)
		}
		if touch[rel] {
			now := time.Now()
			if err := os.Chtimes(dst, now, now); err != nil {
				return eucatalog.Errorf(eucatalog.EIO, "touch %s: %v", rel, err)
			}
		}
	}

	s.replace = nil
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "remove staging directory: %v", err)
	}
	return nil
}

// Abort discards every staged file.
func (s *Stage) Abort() error {
	s.replace = nil
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "remove staging directory: %v", err)
	}
	return nil
}

// staged lists staged files relative to the staging directory, sorted.
func (s *Stage) staged() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.tempDir(), func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.tempDir(), path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EIO, "list staged files: %v", err)
	}
	slices.Sort(files)
	return files, nil
}
