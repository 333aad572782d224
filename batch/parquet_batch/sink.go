// Package parquet_batch writes statistics tables as parquet files.
package parquet_batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/compress"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	log "github.com/sirupsen/logrus"

	"github.com/emptyOVO/mrkit-gender/stats"
)

// SinkConfig names the output file.
type SinkConfig struct {
	Path        string `json:"path"`
	Compression string `json:"compression"`
}

func (c *SinkConfig) WithDefaults() {
	if c.Compression == "" {
		c.Compression = "snappy"
	}
}

var countFields = []arrow.Field{
	{Name: "M", Type: arrow.PrimitiveTypes.Int64},
	{Name: "F", Type: arrow.PrimitiveTypes.Int64},
	{Name: "U", Type: arrow.PrimitiveTypes.Int64},
	{Name: "total_partners", Type: arrow.PrimitiveTypes.Int64},
	{Name: "share_M", Type: arrow.PrimitiveTypes.Float64},
	{Name: "share_F", Type: arrow.PrimitiveTypes.Float64},
	{Name: "share_U", Type: arrow.PrimitiveTypes.Float64},
}

// EntitySchema is the layout of the entity statistics file.
var EntitySchema = arrow.NewSchema(append([]arrow.Field{
	{Name: "entity_key", Type: arrow.BinaryTypes.String},
}, countFields...), nil)

// CategorySchema is the layout of the category statistics file.
var CategorySchema = arrow.NewSchema(append(append([]arrow.Field{
	{Name: "category", Type: arrow.BinaryTypes.String},
}, countFields...),
	arrow.Field{Name: "share_capital_M", Type: arrow.PrimitiveTypes.Float64},
	arrow.Field{Name: "share_capital_F", Type: arrow.PrimitiveTypes.Float64},
	arrow.Field{Name: "share_capital_U", Type: arrow.PrimitiveTypes.Float64},
), nil)

// WriteEntities writes rows to cfg.Path, replacing any existing file.
func WriteEntities(cfg SinkConfig, rows []stats.EntityRow) error {
	b := array.NewRecordBuilder(memory.DefaultAllocator, EntitySchema)
	defer b.Release()
	for _, r := range rows {
		b.Field(0).(*array.StringBuilder).Append(r.Key)
		appendCounts(b, 1, r.M, r.F, r.U, r.TotalPartners, r.ShareM, r.ShareF, r.ShareU)
	}
	rec := b.NewRecord()
	defer rec.Release()
	return write(cfg, EntitySchema, rec)
}

// WriteCategories writes rows to cfg.Path, replacing any existing file.
func WriteCategories(cfg SinkConfig, rows []stats.CategoryRow) error {
	b := array.NewRecordBuilder(memory.DefaultAllocator, CategorySchema)
	defer b.Release()
	for _, r := range rows {
		b.Field(0).(*array.StringBuilder).Append(r.Category)
		appendCounts(b, 1, r.M, r.F, r.U, r.TotalPartners, r.ShareM, r.ShareF, r.ShareU)
		b.Field(8).(*array.Float64Builder).Append(r.ShareCapitalM)
		b.Field(9).(*array.Float64Builder).Append(r.ShareCapitalF)
		b.Field(10).(*array.Float64Builder).Append(r.ShareCapitalU)
	}
	rec := b.NewRecord()
	defer rec.Release()
	return write(cfg, CategorySchema, rec)
}

func appendCounts(b *array.RecordBuilder, at int, m, f, u, total int64, sm, sf, su float64) {
	for i, v := range []int64{m, f, u, total} {
		b.Field(at + i).(*array.Int64Builder).Append(v)
	}
	for i, v := range []float64{sm, sf, su} {
		b.Field(at + 4 + i).(*array.Float64Builder).Append(v)
	}
}

func codec(name string) (compress.Compression, error) {
	switch name {
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	}
	return compress.Codecs.Uncompressed, fmt.Errorf("unsupported parquet compression: %q", name)
}

// write goes through a temporary file renamed into place once complete.
func write(cfg SinkConfig, schema *arrow.Schema, rec arrow.Record) error {
	cfg.WithDefaults()
	if cfg.Path == "" {
		return fmt.Errorf("parquet path is required")
	}
	comp, err := codec(cfg.Compression)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return err
	}
	tmp := cfg.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	// hide Close so the file is closed exactly once, below
	w, err := pqarrow.NewFileWriter(schema, struct{ io.Writer }{f},
		parquet.NewWriterProperties(parquet.WithCompression(comp)),
		pqarrow.DefaultWriterProps())
	if err != nil {
		f.Close()
		return err
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, cfg.Path); err != nil {
		return err
	}
	log.Infof("[Parquet] wrote %d rows into %s", rec.NumRows(), cfg.Path)
	return nil
}
