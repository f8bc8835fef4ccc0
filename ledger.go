package eucatalog

import (
	"context"
	"time"
)

// BuildRecord is one entry of the build ledger.
type BuildRecord struct {
	// ID is assigned by the ledger when empty.
	ID            string
	CreatedAt     time.Time
	Mode          ExecutionMode
	Categories    int
	Products      int
	CatalogDigest string
}

// BuildFilter selects ledger entries, newest first.
type BuildFilter struct {
	Limit  int
	Offset int
}

// BuildLedger records completed catalog builds.
type BuildLedger interface {
	RecordBuild(ctx context.Context, b *BuildRecord) error
	FindBuilds(ctx context.Context, filter BuildFilter) ([]*BuildRecord, error)
}
