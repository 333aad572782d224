package mysql_batch

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Dialect selects the upsert syntax of the target database.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// ParseDialect maps a database/sql driver name to its dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported sql driver: %q", driver)
}

// SourceConfig configures the export of a registry table into delimited
// text shards the chunked reader can consume.
type SourceConfig struct {
	Table      string   `json:"table"`
	PKColumn   string   `json:"pkcolumn"`
	Columns    []string `json:"columns"`
	Where      string   `json:"where"`
	Shards     int      `json:"shards"`
	Parallel   int      `json:"parallel"`
	OutputDir  string   `json:"outputdir"`
	FilePrefix string   `json:"fileprefix"`
	Delimiter  string   `json:"delimiter"`
}

func (c *SourceConfig) WithDefaults() {
	if c.PKColumn == "" {
		c.PKColumn = "id"
	}
	if len(c.Columns) == 0 {
		c.Columns = []string{"cnpj", "nome_socio"}
	}
	if c.Where == "" {
		c.Where = "1=1"
	}
	if c.Shards <= 0 {
		c.Shards = 16
	}
	if c.Parallel <= 0 {
		c.Parallel = 4
	}
	if c.OutputDir == "" {
		c.OutputDir = "txt/sql_source"
	}
	if c.FilePrefix == "" {
		c.FilePrefix = "chunk"
	}
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
}

// SinkConfig configures the upsert of statistics rows into a table.
type SinkConfig struct {
	Dialect     Dialect `json:"dialect"`
	TargetTable string  `json:"targettable"`
	Replace     bool    `json:"replace"`
	BatchSize   int     `json:"batchsize"`
}

func (c *SinkConfig) WithDefaults() {
	if c.Dialect == "" {
		c.Dialect = MySQL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 2000
	}
}

// Backquotes are understood by MySQL and, for compatibility, by SQLite.
func quoteIdentifier(s string) (string, error) {
	if !identifierRe.MatchString(s) {
		return "", fmt.Errorf("invalid identifier: %s", s)
	}
	return "`" + s + "`", nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
