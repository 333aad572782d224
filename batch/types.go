package batch

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/emptyOVO/mrkit-gender/batch/mysql_batch"
	"github.com/emptyOVO/mrkit-gender/batch/parquet_batch"
)

// DBConfig defines a SQL connection. Driver "mysql" uses the network fields,
// "sqlite" opens the database file at Path.
type DBConfig struct {
	Driver   string            `json:"driver"`
	Path     string            `json:"path"`
	Host     string            `json:"host"`
	Port     int               `json:"port"`
	User     string            `json:"user"`
	Password string            `json:"password"`
	Database string            `json:"database"`
	Params   map[string]string `json:"params"`
}

func (c DBConfig) dialect() (mysql_batch.Dialect, error) {
	return mysql_batch.ParseDialect(c.Driver)
}

func (c DBConfig) dsn() string {
	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.Port
	if port == 0 {
		port = 3306
	}
	params := map[string]string{
		"parseTime": "true",
		"charset":   "utf8mb4",
	}
	for k, v := range c.Params {
		params[k] = v
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, params[k]))
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.User,
		c.Password,
		host,
		port,
		c.Database,
		strings.Join(parts, "&"),
	)
}

func (c DBConfig) validate(prefix string) error {
	d, err := c.dialect()
	if err != nil {
		return fmt.Errorf("%s.driver: %w", prefix, err)
	}
	switch d {
	case mysql_batch.SQLite:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("%s.path is required for sqlite", prefix)
		}
	default:
		if c.User == "" || c.Database == "" {
			return fmt.Errorf("%s.user and %s.database are required for mysql", prefix, prefix)
		}
	}
	return nil
}

func openDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	if err := cfg.validate("db"); err != nil {
		return nil, err
	}
	d, _ := cfg.dialect()
	var (
		db  *sql.DB
		err error
	)
	if d == mysql_batch.SQLite {
		db, err = sql.Open("sqlite", cfg.Path)
		if err == nil {
			// one writer at a time
			db.SetMaxOpenConns(1)
		}
	} else {
		db, err = sql.Open("mysql", cfg.dsn())
	}
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenForApp opens a SQL connection for custom flows.
func OpenForApp(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	return openDB(ctx, cfg)
}

// Unified source/sink config aliases exposed by batch package.
type SourceConfig = mysql_batch.SourceConfig
type SinkConfig = mysql_batch.SinkConfig
type ParquetConfig = parquet_batch.SinkConfig
