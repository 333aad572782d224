package worker

import (
	"fmt"

	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/rpc"
	"github.com/emptyOVO/mrkit-gender/stats"
)

// encodeBatch copies the rows of b into a request. The worker rebuilds the
// batch on its side, so nothing is shared across the process boundary.
func encodeBatch(unitID string, b *reader.Batch, f Fields) *rpc.AccumulateRequest {
	rows := make([]*rpc.Row, len(b.Records))
	for i, rec := range b.Records {
		rows[i] = &rpc.Row{Values: rec.Values()}
	}
	return &rpc.AccumulateRequest{
		UnitId:      unitID,
		Start:       b.Start,
		Columns:     b.Schema.Columns(),
		Rows:        rows,
		NameField:   f.NameField,
		EntityField: f.EntityField,
	}
}

func decodeBatch(in *rpc.AccumulateRequest) (*reader.Batch, error) {
	schema, err := reader.NewSchema(in.Columns)
	if err != nil {
		return nil, err
	}
	b := &reader.Batch{
		Schema:  schema,
		Start:   in.Start,
		Records: make([]reader.Record, len(in.Rows)),
	}
	for i, row := range in.Rows {
		rec, err := reader.NewRecord(schema, row.GetValues())
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", in.Start+int64(i), err)
		}
		b.Records[i] = rec
	}
	return b, nil
}

func encodePartial(p stats.Partial) map[string]*rpc.Counts {
	out := make(map[string]*rpc.Counts, len(p))
	for k, c := range p {
		out[k] = &rpc.Counts{M: c.M, F: c.F, U: c.U}
	}
	return out
}

func decodePartial(m map[string]*rpc.Counts) stats.Partial {
	out := make(stats.Partial, len(m))
	for k, c := range m {
		out[k] = stats.GenderCount{M: c.GetM(), F: c.GetF(), U: c.GetU()}
	}
	return out
}
