package batch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emptyOVO/mrkit-gender/batch/mysql_batch"
	"github.com/emptyOVO/mrkit-gender/batch/parquet_batch"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/store"
)

func withDB(ctx context.Context, cfg DBConfig, fn func(db *sql.DB) error) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// writeEntitySinks writes the entity statistics to every configured sink.
// A store sink replaces its table, so a later category job sees this run only.
func writeEntitySinks(ctx context.Context, env *jobEnv, rows []stats.EntityRow) error {
	for i, s := range env.cfg.Sinks {
		var err error
		switch s.Type {
		case "parquet":
			err = parquet_batch.WriteEntities(s.Parquet, rows)
		case "mysql", "sqlite":
			err = withDB(ctx, s.DB, func(db *sql.DB) error {
				return mysql_batch.NewSinkAdapter(s.Config).Entities(ctx, db, rows)
			})
		case "store":
			es := store.NewEntityStore(env.backend, s.Table)
			if err = es.Reset(); err == nil {
				err = es.PutRows(rows)
			}
		default:
			err = fmt.Errorf("unsupported sink type %q", s.Type)
		}
		if err != nil {
			return fmt.Errorf("sinks[%d] %s: %w", i, s.Type, err)
		}
	}
	return nil
}

// writeCategorySinks writes the category statistics to every configured sink.
func writeCategorySinks(ctx context.Context, env *jobEnv, rows []stats.CategoryRow) error {
	for i, s := range env.cfg.Company.Sinks {
		var err error
		switch s.Type {
		case "parquet":
			err = parquet_batch.WriteCategories(s.Parquet, rows)
		case "mysql", "sqlite":
			err = withDB(ctx, s.DB, func(db *sql.DB) error {
				return mysql_batch.NewSinkAdapter(s.Config).Categories(ctx, db, rows)
			})
		default:
			err = fmt.Errorf("unsupported sink type %q", s.Type)
		}
		if err != nil {
			return fmt.Errorf("company.sinks[%d] %s: %w", i, s.Type, err)
		}
	}
	return nil
}
