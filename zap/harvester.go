package zap

import (
	"context"
	"time"

	"github.com/timarques/eucatalog"
	"go.uber.org/zap"
)

// Ensure LoggingHarvester implements eucatalog.IconHarvester.
var _ eucatalog.IconHarvester = (*LoggingHarvester)(nil)

// LoggingHarvester wraps an IconHarvester with logging.
type LoggingHarvester struct {
	next   eucatalog.IconHarvester
	logger *zap.Logger
}

// NewLoggingHarvester creates a new LoggingHarvester.
func NewLoggingHarvester(next eucatalog.IconHarvester, logger *zap.Logger) *LoggingHarvester {
	return &LoggingHarvester{next: next, logger: logger}
}

// Harvest delegates to the wrapped harvester and logs asset counts by format.
func (h *LoggingHarvester) Harvest(ctx context.Context, icons []eucatalog.Icon, mode eucatalog.ExecutionMode) (assets []eucatalog.IconAsset, err error) {
	defer func(begin time.Time) {
		var vector, raster, traced int
		for _, a := range assets {
			switch a.Icon.Format {
			case eucatalog.IconVector:
				vector++
			case eucatalog.IconRaster:
				raster++
			case eucatalog.IconTraced:
				traced++
			}
		}
		fields := []zap.Field{
			zap.Int("requested", len(icons)),
			zap.Int("vector", vector),
			zap.Int("raster", raster),
			zap.Int("traced", traced),
			zap.Stringer("mode", mode),
			zap.Duration("duration", time.Since(begin)),
		}
		if err != nil {
			h.logger.Error("harvest icons", append(fields, zap.Error(err))...)
			return
		}
		h.logger.Info("harvest icons", fields...)
	}(time.Now())
	return h.next.Harvest(ctx, icons, mode)
}
