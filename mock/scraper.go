package mock

import (
	"context"

	"github.com/timarques/eucatalog"
)

var _ eucatalog.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of eucatalog.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, mode eucatalog.ExecutionMode) (*eucatalog.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, mode eucatalog.ExecutionMode) (*eucatalog.ScrapeResult, error) {
	return s.ScrapeFn(ctx, mode)
}
