package batch

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
)

// categoryUnit is the partial result of one company batch.
type categoryUnit struct {
	Categories stats.CategoryPartial `json:"categories"`
	Join       stats.JoinStats       `json:"join"`
	BadCodes   int64                 `json:"bad_codes"`
}

func mergeCategoryUnits(acc, next categoryUnit) categoryUnit {
	if acc.Categories == nil {
		acc.Categories = make(stats.CategoryPartial, len(next.Categories))
	}
	acc.Categories.Add(next.Categories)
	acc.Join = acc.Join.Plus(next.Join)
	acc.BadCodes += next.BadCodes
	return acc
}

func categoryTask(id string, b *reader.Batch, lookup stats.EntityLookup, cfg FlowCompanyConfig) mapreduce.Task[categoryUnit] {
	return mapreduce.NewTask(id, func(ctx context.Context) (categoryUnit, error) {
		if err := ctx.Err(); err != nil {
			return categoryUnit{}, err
		}
		rows, js, err := stats.JoinCompanies(b, lookup, cfg.Fields)
		if err != nil {
			return categoryUnit{}, err
		}
		p, bad := stats.AccumulateCategories(rows, cfg.Segment)
		return categoryUnit{Categories: p, Join: js, BadCodes: int64(bad)}, nil
	})
}

// runCategoryJob joins the companies with the partner statistics in lookup
// and sums them per category segment.
func runCategoryJob(ctx context.Context, env *jobEnv, lookup stats.EntityLookup) (jr *JobReport, err error) {
	cfg := env.cfg
	jr = &JobReport{Job: JobCategories}
	started := time.Now()
	defer func() {
		jr.Durations.TotalDuration = time.Since(started)
		finishRun[categoryUnit](env, jr, started, err)
	}()

	sSource := time.Now()
	files, err := resolveInputs(ctx, cfg.Company.Source)
	if err != nil {
		return jr, err
	}
	jr.Durations.SourceDuration = time.Since(sSource)

	rc, err := reduceConfig[categoryUnit](env, JobCategories)
	if err != nil {
		return jr, err
	}
	src := newBatchSource(files, readerConfig(cfg.Company.Source))
	defer src.Close()
	units := mapreduce.SourceFunc[categoryUnit](func(ctx context.Context) (mapreduce.Task[categoryUnit], error) {
		b, id, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		return categoryTask(id, b, lookup, cfg.Company), nil
	})

	sTransform := time.Now()
	pool := mapreduce.NewLocalPool[categoryUnit](cfg.Transform.Workers, cfg.Transform.QueueDepth)
	res, err := mapreduce.Reduce(ctx, pool, units, mergeCategoryUnits, rc)
	jr.Durations.TransformDuration = time.Since(sTransform)
	summarize(jr, res)
	jr.Read = src.Stats()
	jr.Join = res.Value.Join
	jr.BadCodes = res.Value.BadCodes
	if err != nil {
		return jr, err
	}

	rows := stats.FinalizeCategories(res.Value.Categories)
	jr.Rows = len(rows)
	log.Infof("[Flow] categories: %d companies kept of %d, %d without partners, %d invalid, %d bad codes",
		jr.Join.Rows-jr.Join.Filtered-jr.Join.Invalid, jr.Join.Rows, jr.Join.Missing, jr.Join.Invalid, jr.BadCodes)
	if !jr.Complete {
		log.Warnf("[Flow] categories: writing INCOMPLETE statistics (%d units skipped)", jr.Skipped)
	}
	sSink := time.Now()
	if err := writeCategorySinks(ctx, env, rows); err != nil {
		return jr, err
	}
	jr.Durations.SinkDuration = time.Since(sSink)
	log.Infof("[Flow] %v", jr)
	return jr, nil
}
