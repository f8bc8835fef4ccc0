package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/sqlite"
)

func TestBuildLedger_RecordBuild(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()

		ledger := sqlite.NewBuildLedger(setupTestDB(t))
		b := &eucatalog.BuildRecord{Mode: eucatalog.Serial, Categories: 3, Products: 5}

		require.NoError(t, ledger.RecordBuild(context.Background(), b))

		_, err := uuid.Parse(b.ID)
		require.NoError(t, err, "ID should be a UUID")
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("keeps a provided ID", func(t *testing.T) {
		t.Parallel()

		ledger := sqlite.NewBuildLedger(setupTestDB(t))
		ctx := context.Background()
		b := &eucatalog.BuildRecord{ID: "build-1", CatalogDigest: "ef46db3751d8e999"}
		require.NoError(t, ledger.RecordBuild(ctx, b))

		builds, err := ledger.FindBuilds(ctx, eucatalog.BuildFilter{})
		require.NoError(t, err)
		require.Len(t, builds, 1)
		assert.Equal(t, "build-1", builds[0].ID)
		assert.Equal(t, "ef46db3751d8e999", builds[0].CatalogDigest)
		assert.Equal(t, eucatalog.Parallel, builds[0].Mode)
	})

	t.Run("duplicate ID is an io error", func(t *testing.T) {
		t.Parallel()

		ledger := sqlite.NewBuildLedger(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, ledger.RecordBuild(ctx, &eucatalog.BuildRecord{ID: "same"}))

		err := ledger.RecordBuild(ctx, &eucatalog.BuildRecord{ID: "same"})
		assert.Equal(t, eucatalog.EIO, eucatalog.ErrorCode(err))
	})
}

func TestBuildLedger_FindBuilds(t *testing.T) {
	t.Parallel()

	ledger := sqlite.NewBuildLedger(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, ledger.RecordBuild(ctx, &eucatalog.BuildRecord{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Mode:      eucatalog.Serial,
			Products:  i,
		}))
	}

	tests := []struct {
		name   string
		filter eucatalog.BuildFilter
		want   []string
	}{
		{name: "newest first", filter: eucatalog.BuildFilter{}, want: []string{"third", "second", "first"}},
		{name: "limit", filter: eucatalog.BuildFilter{Limit: 1}, want: []string{"third"}},
		{name: "offset without limit", filter: eucatalog.BuildFilter{Offset: 2}, want: []string{"first"}},
		{name: "limit and offset", filter: eucatalog.BuildFilter{Limit: 1, Offset: 1}, want: []string{"second"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			builds, err := ledger.FindBuilds(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, len(builds))
			for i, b := range builds {
				ids[i] = b.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("round trips fields", func(t *testing.T) {
		t.Parallel()

		builds, err := ledger.FindBuilds(ctx, eucatalog.BuildFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, builds, 1)
		assert.Equal(t, base.Add(2*time.Hour), builds[0].CreatedAt)
		assert.Equal(t, eucatalog.Serial, builds[0].Mode)
		assert.Equal(t, 2, builds[0].Products)
	})
}
