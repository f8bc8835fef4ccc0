package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/sqlite"
)

// BenchmarkSaveCatalog compares snapshot writes between WAL and rollback journal modes.
// The catalog is sized like the real directory: ~40 categories, ~600 products.
func BenchmarkSaveCatalog(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkSaveCatalog(b, "DELETE")
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkSaveCatalog(b, "WAL")
	})
}

func benchmarkSaveCatalog(b *testing.B, journalMode string) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	_, err := db.ExecContext(ctx, "PRAGMA journal_mode = "+journalMode)
	require.NoError(b, err)

	catalog := benchCatalog(b, 40, 600)
	store := sqlite.NewCatalogStore(db)

	for b.Loop() {
		if err := store.SaveCatalog(ctx, catalog); err != nil {
			b.Fatal(err)
		}
	}
}

func benchCatalog(b *testing.B, nCategories, nProducts int) *eucatalog.Catalog {
	b.Helper()

	categories := make([]eucatalog.Category, nCategories)
	for i := range categories {
		slug := fmt.Sprintf("category-%d", i)
		categories[i] = eucatalog.Category{Slug: slug, Name: slug, Icon: slug}
	}

	products := make([]eucatalog.Product, nProducts)
	for i := range products {
		name := fmt.Sprintf("Product %d", i)
		products[i] = eucatalog.Product{
			Name:        name,
			Description: "Lorem ipsum dolor sit amet. Consectetur adipiscing elit.",
			Summary:     "Lorem ipsum dolor sit amet.",
			Country:     eucatalog.Country(i%eucatalog.CountryCount + 1),
			Categories:  []string{categories[i%nCategories].Slug, categories[(i+1)%nCategories].Slug},
			Websites: []eucatalog.Website{
				{Label: "Company", URL: fmt.Sprintf("https://product%d.example", i)},
				{Label: eucatalog.DirectoryName, URL: fmt.Sprintf("https://european-alternatives.eu/product/product-%d", i)},
			},
			Logo: fmt.Sprintf("product_%d", i),
		}
	}

	c, err := eucatalog.NewCatalog(categories, products)
	require.NoError(b, err)
	return c
}
