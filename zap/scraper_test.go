package zap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/crawl"
	"github.com/timarques/eucatalog/mock"
	euzap "github.com/timarques/eucatalog/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoggingScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("logs catalog size", func(t *testing.T) {
		t.Parallel()

		logger, logs := observed(zapcore.InfoLevel)
		catalog, err := eucatalog.NewCatalog(
			[]eucatalog.Category{{Slug: "cloud", Name: "Cloud"}},
			[]eucatalog.Product{{Name: "Alpha", Categories: []string{"cloud"}, Logo: "alpha"}},
		)
		require.NoError(t, err)

		inner := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, mode eucatalog.ExecutionMode) (*eucatalog.ScrapeResult, error) {
				return &eucatalog.ScrapeResult{Catalog: catalog, Icons: make([]eucatalog.Icon, 3)}, nil
			},
		}

		res, err := euzap.NewLoggingScraper(inner, logger).Scrape(context.Background(), eucatalog.Serial)

		require.NoError(t, err)
		assert.Same(t, catalog, res.Catalog)
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Equal(t, "serial", fields["mode"])
		assert.EqualValues(t, 1, fields["categories"])
		assert.EqualValues(t, 1, fields["products"])
		assert.EqualValues(t, 3, fields["icons"])
	})

	t.Run("logs failure at error level", func(t *testing.T) {
		t.Parallel()

		logger, logs := observed(zapcore.InfoLevel)
		inner := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, mode eucatalog.ExecutionMode) (*eucatalog.ScrapeResult, error) {
				return nil, eucatalog.Errorf(eucatalog.ENETWORK, "HTTP 503 for https://european-alternatives.eu/categories")
			},
		}

		_, err := euzap.NewLoggingScraper(inner, logger).Scrape(context.Background(), eucatalog.Parallel)

		require.Error(t, err)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
		assert.NotContains(t, logs.All()[0].ContextMap(), "products")
	})
}

func TestProgressLogger(t *testing.T) {
	t.Parallel()

	logger, logs := observed(zapcore.DebugLevel)
	progress := euzap.ProgressLogger(logger)

	progress(crawl.ProgressEvent{Phase: crawl.PhaseProducts, Completed: 2, Total: 5, URL: "https://european-alternatives.eu/product/alpha"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, crawl.PhaseProducts.String(), fields["phase"])
	assert.EqualValues(t, 2, fields["completed"])
	assert.EqualValues(t, 5, fields["total"])
}
