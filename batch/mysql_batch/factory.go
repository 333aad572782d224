package mysql_batch

import (
	"context"
	"database/sql"

	"github.com/emptyOVO/mrkit-gender/stats"
)

type SourceAdapter struct {
	cfg SourceConfig
}

func NewSourceAdapter(cfg SourceConfig) SourceAdapter {
	return SourceAdapter{cfg: cfg}
}

func (a SourceAdapter) Export(ctx context.Context, db *sql.DB) ([]string, error) {
	return ExportSourceByPKRange(ctx, db, a.cfg)
}

type SinkAdapter struct {
	cfg SinkConfig
}

func NewSinkAdapter(cfg SinkConfig) SinkAdapter {
	return SinkAdapter{cfg: cfg}
}

func (a SinkAdapter) Table() string {
	return a.cfg.TargetTable
}

func (a SinkAdapter) Entities(ctx context.Context, db *sql.DB, rows []stats.EntityRow) error {
	return WriteEntities(ctx, db, a.cfg, rows)
}

func (a SinkAdapter) Categories(ctx context.Context, db *sql.DB, rows []stats.CategoryRow) error {
	return WriteCategories(ctx, db, a.cfg, rows)
}
