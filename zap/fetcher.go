package zap

import (
	"context"
	"time"

	"github.com/timarques/eucatalog"
	"go.uber.org/zap"
)

// Ensure LoggingFetcher implements eucatalog.Fetcher.
var _ eucatalog.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   eucatalog.Fetcher
	logger *zap.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next eucatalog.Fetcher, logger *zap.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchText delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) FetchText(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			zap.String("url", url),
			zap.Int("bytes", len(html)),
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
	}(time.Now())
	return f.next.FetchText(ctx, url)
}

// FetchBytes delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) FetchBytes(ctx context.Context, url string) (data []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			zap.String("url", url),
			zap.Int("bytes", len(data)),
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
	}(time.Now())
	return f.next.FetchBytes(ctx, url)
}
