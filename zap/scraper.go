package zap

import (
	"context"
	"time"

	"github.com/timarques/eucatalog"
	"github.com/timarques/eucatalog/crawl"
	"go.uber.org/zap"
)

// Ensure LoggingScraper implements eucatalog.Scraper.
var _ eucatalog.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   eucatalog.Scraper
	logger *zap.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next eucatalog.Scraper, logger *zap.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the result size.
func (s *LoggingScraper) Scrape(ctx context.Context, mode eucatalog.ExecutionMode) (res *eucatalog.ScrapeResult, err error) {
	defer func(begin time.Time) {
		fields := []zap.Field{
			zap.Stringer("mode", mode),
			zap.Duration("duration", time.Since(begin)),
		}
		if res != nil && res.Catalog != nil {
			fields = append(fields,
				zap.Int("categories", len(res.Catalog.Categories)),
				zap.Int("products", len(res.Catalog.Products)),
				zap.Int("icons", len(res.Icons)),
			)
		}
		if err != nil {
			s.logger.Error("scrape", append(fields, zap.Error(err))...)
			return
		}
		s.logger.Info("scrape", fields...)
	}(time.Now())
	return s.next.Scrape(ctx, mode)
}

// ProgressLogger returns a crawl.ProgressFunc that logs each completed page
// at debug level.
func ProgressLogger(logger *zap.Logger) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		logger.Debug("page scraped",
			zap.Stringer("phase", e.Phase),
			zap.Int("completed", e.Completed),
			zap.Int("total", e.Total),
			zap.String("url", e.URL),
		)
	}
}
