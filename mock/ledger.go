package mock

import (
	"context"

	"github.com/timarques/eucatalog"
)

var _ eucatalog.BuildLedger = (*BuildLedger)(nil)

// BuildLedger is a mock implementation of eucatalog.BuildLedger.
type BuildLedger struct {
	RecordBuildFn func(ctx context.Context, b *eucatalog.BuildRecord) error
	FindBuildsFn  func(ctx context.Context, filter eucatalog.BuildFilter) ([]*eucatalog.BuildRecord, error)
}

func (l *BuildLedger) RecordBuild(ctx context.Context, b *eucatalog.BuildRecord) error {
	return l.RecordBuildFn(ctx, b)
}

func (l *BuildLedger) FindBuilds(ctx context.Context, filter eucatalog.BuildFilter) ([]*eucatalog.BuildRecord, error) {
	return l.FindBuildsFn(ctx, filter)
}
