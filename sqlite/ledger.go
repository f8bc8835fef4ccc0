package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timarques/eucatalog"
)

// Compile-time interface verification.
var _ eucatalog.BuildLedger = (*BuildLedger)(nil)

// BuildLedger implements eucatalog.BuildLedger using SQLite.
type BuildLedger struct {
	db *DB
}

// NewBuildLedger creates a new BuildLedger.
func NewBuildLedger(db *DB) *BuildLedger {
	return &BuildLedger{db: db}
}

// RecordBuild appends b to the ledger, assigning an ID and creation time
// when they are unset.
func (l *BuildLedger) RecordBuild(ctx context.Context, b *eucatalog.BuildRecord) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO builds (id, created_at, mode, categories, products, catalog_digest)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.CreatedAt.UTC().Format(time.RFC3339), b.Mode.String(), b.Categories, b.Products, b.CatalogDigest)
	if err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "record build %s: %v", b.ID, err)
	}
	return nil
}

// FindBuilds returns ledger entries, newest first.
func (l *BuildLedger) FindBuilds(ctx context.Context, filter eucatalog.BuildFilter) ([]*eucatalog.BuildRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, created_at, mode, categories, products, catalog_digest FROM builds")
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := l.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EIO, "query builds: %v", err)
	}
	defer rows.Close()

	var builds []*eucatalog.BuildRecord
	for rows.Next() {
		var b eucatalog.BuildRecord
		var createdAt, mode string
		if err := rows.Scan(&b.ID, &createdAt, &mode, &b.Categories, &b.Products, &b.CatalogDigest); err != nil {
			return nil, eucatalog.Errorf(eucatalog.EIO, "scan build: %v", err)
		}
		if b.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if b.Mode, err = eucatalog.ParseExecutionMode(mode); err != nil {
			return nil, err
		}
		builds = append(builds, &b)
	}
	return builds, rowsErr(rows, "builds")
}
