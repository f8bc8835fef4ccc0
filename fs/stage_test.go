package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/fs"
)

// Story: Staged Output
// A build stages its artifacts and commits them together, catalog last

func TestStage_WriteFileWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a stage targeting a directory
	base := t.TempDir()
	stage := fs.NewStage(base, "generated")

	// When I stage a file
	err := stage.WriteFile("icons/cloud.svg", []byte("<svg/>"))

	// Then no error occurs
	require.NoError(t, err)

	// And the file exists in the temp directory
	_, err = os.Stat(filepath.Join(base, "generated.tmp", "icons", "cloud.svg"))
	require.NoError(t, err, "file should exist in temp directory")

	// And the output directory does not exist yet
	_, err = os.Stat(filepath.Join(base, "generated"))
	assert.True(t, os.IsNotExist(err), "output directory should not exist until commit")
}

func TestStage_CommitMovesFilesAndKeepsExistingOnes(t *testing.T) {
	t.Parallel()

	// Given an output directory with an unrelated artifact
	base := t.TempDir()
	out := filepath.Join(base, "generated")
	require.NoError(t, os.MkdirAll(out, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "templates.xml"), []byte("t"), 0644))

	// And a stage with files
	stage := fs.NewStage(base, "generated")
	require.NoError(t, stage.WriteFile("icons/cloud.svg", []byte("<svg/>")))
	require.NoError(t, stage.WriteFile("catalog.go", []byte("package catalog")))

	// When I commit
	err := stage.Commit("catalog.go")

	// Then no error occurs
	require.NoError(t, err)

	// And staged files are in the output directory
	data, err := os.ReadFile(filepath.Join(out, "catalog.go"))
	require.NoError(t, err)
	assert.Equal(t, "package catalog", string(data))
	_, err = os.Stat(filepath.Join(out, "icons", "cloud.svg"))
	require.NoError(t, err)

	// And unrelated artifacts survive
	_, err = os.Stat(filepath.Join(out, "templates.xml"))
	require.NoError(t, err)

	// And the temp directory is gone
	_, err = os.Stat(filepath.Join(base, "generated.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestStage_CommitMovesLastFilesAfterOthers(t *testing.T) {
	t.Parallel()

	// Given a stage whose catalog sorts before its icons
	base := t.TempDir()
	stage := fs.NewStage(base, "generated")
	require.NoError(t, stage.WriteFile("a_catalog.go", []byte("c")))
	require.NoError(t, stage.WriteFile("icons/z.svg", []byte("z")))

	// When I commit with the catalog last
	require.NoError(t, stage.Commit("a_catalog.go"))

	// Then the catalog is not older than any icon
	catalog, err := os.Stat(filepath.Join(base, "generated", "a_catalog.go"))
	require.NoError(t, err)
	icon, err := os.Stat(filepath.Join(base, "generated", "icons", "z.svg"))
	require.NoError(t, err)
	assert.False(t, catalog.ModTime().Before(icon.ModTime()))
}

func TestStage_ReplaceClearsDirectoryOnCommit(t *testing.T) {
	t.Parallel()

	// Given an output directory with a stale icon
	base := t.TempDir()
	stale := filepath.Join(base, "generated", "icons", "old.svg")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	// And a stage that replaces the icons directory
	stage := fs.NewStage(base, "generated")
	stage.Replace("icons")
	require.NoError(t, stage.WriteFile("icons/new.svg", []byte("new")))

	// When I commit
	require.NoError(t, stage.Commit())

	// Then only the new icon remains
	entries, err := os.ReadDir(filepath.Join(base, "generated", "icons"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new.svg", entries[0].Name())
}

func TestStage_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a stage with files
	base := t.TempDir()
	stage := fs.NewStage(base, "generated")
	require.NoError(t, stage.WriteFile("catalog.go", []byte("c")))

	// When I abort
	err := stage.Abort()

	// Then no error occurs
	require.NoError(t, err)

	// And nothing is left behind
	_, err = os.Stat(filepath.Join(base, "generated.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")
	_, err = os.Stat(filepath.Join(base, "generated"))
	assert.True(t, os.IsNotExist(err), "output directory should not exist after abort")
}

func TestStage_BeginDiscardsLeftovers(t *testing.T) {
	t.Parallel()

	// Given leftovers of an interrupted build
	base := t.TempDir()
	leftover := filepath.Join(base, "generated.tmp", "catalog.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(leftover), 0755))
	require.NoError(t, os.WriteFile(leftover, []byte("partial"), 0644))

	// When a new stage begins and commits
	stage := fs.NewStage(base, "generated")
	require.NoError(t, stage.Begin())
	require.NoError(t, stage.WriteFile("icons/a.svg", []byte("a")))
	require.NoError(t, stage.Commit())

	// Then the partial catalog never reaches the output directory
	_, err := os.Stat(filepath.Join(base, "generated", "catalog.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestStage_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	// Given a stage
	stage := fs.NewStage(t.TempDir(), "generated")

	// When I stage a file outside the staging directory
	err := stage.WriteFile("../../etc/passwd", []byte("bad"))

	// Then an error is returned
	require.Error(t, err, "path traversal should be rejected")
	assert.Equal(t, eucatalog.EINVALID, eucatalog.ErrorCode(err))
	assert.Contains(t, err.Error(), "path traversal")
}

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("exists and mod time", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.go"), []byte("c"), 0644))
		cache := fs.NewCache(dir)

		ok, err := cache.Exists("catalog.go")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = cache.Exists("icons.xml")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = cache.ModTime("icons.xml")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stale when target is missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		source := filepath.Join(t.TempDir(), "window.ui")
		require.NoError(t, os.WriteFile(source, []byte("<interface/>"), 0644))

		stale, err := fs.NewCache(dir).IsStale("templates.xml", source)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("stale when source is newer", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "templates.xml")
		source := filepath.Join(t.TempDir(), "window.ui")
		require.NoError(t, os.WriteFile(target, []byte("t"), 0644))
		require.NoError(t, os.WriteFile(source, []byte("s"), 0644))

		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(target, past, past))

		stale, err := fs.NewCache(dir).IsStale("templates.xml", source)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("fresh when target is newer", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "templates.xml")
		source := filepath.Join(t.TempDir(), "window.ui")
		require.NoError(t, os.WriteFile(source, []byte("s"), 0644))
		require.NoError(t, os.WriteFile(target, []byte("t"), 0644))

		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(source, past, past))

		stale, err := fs.NewCache(dir).IsStale("templates.xml", source)
		require.NoError(t, err)
		assert.False(t, stale)
	})

	t.Run("missing source is an io error", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewCache(t.TempDir()).IsStale("templates.xml", filepath.Join(t.TempDir(), "missing.ui"))
		assert.Equal(t, eucatalog.EIO, eucatalog.ErrorCode(err))
	})

	t.Run("list returns sorted regular files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		icons := filepath.Join(dir, "icons")
		require.NoError(t, os.MkdirAll(filepath.Join(icons, "nested"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(icons, "b.png"), nil, 0644))
		require.NoError(t, os.WriteFile(filepath.Join(icons, "a.svg"), nil, 0644))

		names, err := fs.NewCache(dir).List("icons")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.svg", "b.png"}, names)

		names, err = fs.NewCache(dir).List("missing")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("remove ignores missing entries", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.go"), nil, 0644))

		cache := fs.NewCache(dir)
		require.NoError(t, cache.Remove("catalog.go", "icons"))

		ok, err := cache.Exists("catalog.go")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
