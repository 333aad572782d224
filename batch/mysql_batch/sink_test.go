package mysql_batch

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "out.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWriteEntitiesUpsert(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	cfg := SinkConfig{Dialect: SQLite, TargetTable: "partner_stats", BatchSize: 1}

	first := stats.Finalize(stats.Partial{
		"1": {M: 1, F: 1},
		"2": {F: 2},
	})
	if err := WriteEntities(ctx, db, cfg, first); err != nil {
		t.Fatalf("WriteEntities: %v", err)
	}
	second := stats.Finalize(stats.Partial{
		"2": {M: 1, F: 3},
		"3": {U: 1},
	})
	if err := WriteEntities(ctx, db, cfg, second); err != nil {
		t.Fatalf("WriteEntities again: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM partner_stats").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("row count = %d, want 3", n)
	}
	var m, f, total int64
	var shareF float64
	err := db.QueryRow("SELECT M, F, total_partners, share_F FROM partner_stats WHERE entity_key = ?", "2").Scan(&m, &f, &total, &shareF)
	if err != nil {
		t.Fatal(err)
	}
	if m != 1 || f != 3 || total != 4 || shareF != 0.75 {
		t.Errorf("entity 2 = M%d F%d total %d share_F %v", m, f, total, shareF)
	}

	cfg.Replace = true
	if err := WriteEntities(ctx, db, cfg, first[:1]); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM partner_stats").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("after replace row count = %d, want 1", n)
	}
}

func TestWriteCategories(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	rows := stats.FinalizeCategories(stats.CategoryPartial{
		"47": {GenderCount: stats.GenderCount{M: 1, F: 1}, ShareCapitalM: 50, ShareCapitalF: 50},
	})
	if err := WriteCategories(ctx, db, SinkConfig{Dialect: SQLite, TargetTable: "cnae_stats"}, rows); err != nil {
		t.Fatalf("WriteCategories: %v", err)
	}
	var capF float64
	var total int64
	if err := db.QueryRow("SELECT total_partners, share_capital_F FROM cnae_stats WHERE category = '47'").Scan(&total, &capF); err != nil {
		t.Fatal(err)
	}
	if total != 2 || capF != 50 {
		t.Errorf("category 47: total %d share_capital_F %v", total, capF)
	}
}

func TestSinkRejectsBadIdentifier(t *testing.T) {
	db := openSQLite(t)
	err := WriteEntities(context.Background(), db, SinkConfig{Dialect: SQLite, TargetTable: "drop table;"}, nil)
	if err == nil || !strings.Contains(err.Error(), "invalid identifier") {
		t.Errorf("expected invalid identifier error, got %v", err)
	}
	if err := WriteEntities(context.Background(), db, SinkConfig{Dialect: SQLite}, nil); err == nil {
		t.Error("expected error without a target table")
	}
}

func TestUpsertClause(t *testing.T) {
	cols := []string{"`k`", "`v`"}
	if got := upsertClause(MySQL, cols); got != "ON DUPLICATE KEY UPDATE `v`=VALUES(`v`)" {
		t.Errorf("mysql clause = %q", got)
	}
	if got := upsertClause(SQLite, cols); got != "ON CONFLICT(`k`) DO UPDATE SET `v`=excluded.`v`" {
		t.Errorf("sqlite clause = %q", got)
	}
}

func TestExportSourceByPKRange(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	if _, err := db.Exec("CREATE TABLE socios (id INTEGER PRIMARY KEY, cnpj TEXT, nome_socio TEXT)"); err != nil {
		t.Fatal(err)
	}
	names := []string{"MARIA", "JOAO", "SOUZA, ANA", "PEDRO", "LUCIA", "CARLOS", "BEATRIZ"}
	for i, name := range names {
		if _, err := db.Exec("INSERT INTO socios (id, cnpj, nome_socio) VALUES (?, ?, ?)", i+1, i%3, name); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ExportSourceByPKRange(ctx, db, SourceConfig{
		Table:     "socios",
		Shards:    3,
		Parallel:  2,
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("ExportSourceByPKRange: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d shards, want 3", len(files))
	}

	var got []string
	for _, f := range files {
		r, err := reader.OpenFile(f, reader.Config{})
		if err != nil {
			t.Fatalf("OpenFile(%s): %v", f, err)
		}
		for {
			b, err := r.Next(ctx)
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatal(err)
			}
			for _, rec := range b.Records {
				v, _ := rec.Get("nome_socio")
				got = append(got, v)
			}
		}
		r.Close()
	}
	if strings.Join(got, "|") != strings.Join(names, "|") {
		t.Errorf("exported names = %q", got)
	}
}

func TestExportEmptyTable(t *testing.T) {
	db := openSQLite(t)
	if _, err := db.Exec("CREATE TABLE socios (id INTEGER PRIMARY KEY, cnpj TEXT, nome_socio TEXT)"); err != nil {
		t.Fatal(err)
	}
	files, err := ExportSourceByPKRange(context.Background(), db, SourceConfig{Table: "socios", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("expected no shards, got %v", files)
	}
}
