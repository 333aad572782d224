package mysql_batch

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/emptyOVO/mrkit-gender/stats"
)

type column struct {
	name string
	typ  string
}

// tableSpec is the layout of an output table. The first column is the key.
type tableSpec struct {
	columns []column
}

var entityTable = tableSpec{columns: []column{
	{"entity_key", "VARCHAR(255) NOT NULL"},
	{"M", "BIGINT NOT NULL"},
	{"F", "BIGINT NOT NULL"},
	{"U", "BIGINT NOT NULL"},
	{"total_partners", "BIGINT NOT NULL"},
	{"share_M", "DOUBLE NOT NULL"},
	{"share_F", "DOUBLE NOT NULL"},
	{"share_U", "DOUBLE NOT NULL"},
}}

var categoryTable = tableSpec{columns: []column{
	{"category", "VARCHAR(64) NOT NULL"},
	{"M", "BIGINT NOT NULL"},
	{"F", "BIGINT NOT NULL"},
	{"U", "BIGINT NOT NULL"},
	{"total_partners", "BIGINT NOT NULL"},
	{"share_M", "DOUBLE NOT NULL"},
	{"share_F", "DOUBLE NOT NULL"},
	{"share_U", "DOUBLE NOT NULL"},
	{"share_capital_M", "DOUBLE NOT NULL"},
	{"share_capital_F", "DOUBLE NOT NULL"},
	{"share_capital_U", "DOUBLE NOT NULL"},
}}

// WriteEntities upserts entity statistics rows into cfg.TargetTable.
func WriteEntities(ctx context.Context, db *sql.DB, cfg SinkConfig, rows []stats.EntityRow) error {
	vals := make([][]interface{}, len(rows))
	for i, r := range rows {
		vals[i] = []interface{}{r.Key, r.M, r.F, r.U, r.TotalPartners, r.ShareM, r.ShareF, r.ShareU}
	}
	return writeRows(ctx, db, cfg, entityTable, vals)
}

// WriteCategories upserts category statistics rows into cfg.TargetTable.
func WriteCategories(ctx context.Context, db *sql.DB, cfg SinkConfig, rows []stats.CategoryRow) error {
	vals := make([][]interface{}, len(rows))
	for i, r := range rows {
		vals[i] = []interface{}{r.Category, r.M, r.F, r.U, r.TotalPartners, r.ShareM, r.ShareF, r.ShareU,
			r.ShareCapitalM, r.ShareCapitalF, r.ShareCapitalU}
	}
	return writeRows(ctx, db, cfg, categoryTable, vals)
}

// writeRows creates the table when needed and upserts rows in batches inside
// one transaction. With Replace the table is emptied first.
func writeRows(ctx context.Context, db *sql.DB, cfg SinkConfig, spec tableSpec, rows [][]interface{}) error {
	cfg.WithDefaults()
	if cfg.TargetTable == "" {
		return fmt.Errorf("target table is required")
	}
	table, err := quoteIdentifier(cfg.TargetTable)
	if err != nil {
		return err
	}
	cols := make([]string, len(spec.columns))
	for i, c := range spec.columns {
		if cols[i], err = quoteIdentifier(c.name); err != nil {
			return err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	defs := make([]string, len(spec.columns))
	for i, c := range spec.columns {
		defs[i] = fmt.Sprintf("  %s %s", cols[i], c.typ)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
%s,
  PRIMARY KEY (%s)
)`, table, strings.Join(defs, ",\n"), cols[0])); err != nil {
		return err
	}
	if cfg.Replace {
		// TRUNCATE is MySQL only and commits implicitly
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return err
		}
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	tail := upsertClause(cfg.Dialect, cols)
	for start := 0; start < len(rows); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		valueSQL := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*len(cols))
		for _, row := range rows[start:end] {
			valueSQL = append(valueSQL, placeholder)
			args = append(args, row...)
		}
		sqlStr := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s %s",
			table, strings.Join(cols, ", "), strings.Join(valueSQL, ","), tail)
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Infof("[SQLSink] wrote %d rows into %s", len(rows), cfg.TargetTable)
	return nil
}

// upsertClause overwrites every non-key column of a row whose key exists.
func upsertClause(d Dialect, cols []string) string {
	sets := make([]string, 0, len(cols)-1)
	for _, c := range cols[1:] {
		if d == SQLite {
			sets = append(sets, fmt.Sprintf("%s=excluded.%s", c, c))
		} else {
			sets = append(sets, fmt.Sprintf("%s=VALUES(%s)", c, c))
		}
	}
	if d == SQLite {
		return fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s", cols[0], strings.Join(sets, ", "))
	}
	return "ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}
