package mock

import (
	"context"

	"github.com/timarques/eucatalog"
)

var (
	_ eucatalog.CatalogGenerator = (*CatalogGenerator)(nil)
	_ eucatalog.CatalogStore     = (*CatalogStore)(nil)
)

// CatalogGenerator is a mock implementation of eucatalog.CatalogGenerator.
type CatalogGenerator struct {
	GenerateFn func(c *eucatalog.Catalog) ([]byte, error)
}

func (g *CatalogGenerator) Generate(c *eucatalog.Catalog) ([]byte, error) {
	return g.GenerateFn(c)
}

// CatalogStore is a mock implementation of eucatalog.CatalogStore.
type CatalogStore struct {
	SaveCatalogFn func(ctx context.Context, c *eucatalog.Catalog) error
	LoadCatalogFn func(ctx context.Context) (*eucatalog.Catalog, error)
}

func (s *CatalogStore) SaveCatalog(ctx context.Context, c *eucatalog.Catalog) error {
	return s.SaveCatalogFn(ctx, c)
}

func (s *CatalogStore) LoadCatalog(ctx context.Context) (*eucatalog.Catalog, error) {
	return s.LoadCatalogFn(ctx)
}
