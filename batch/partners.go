package batch

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/trie"
	"github.com/emptyOVO/mrkit-gender/worker"
)

func mergePartials(acc, next stats.Partial) stats.Partial {
	if acc == nil {
		acc = make(stats.Partial, len(next))
	}
	acc.Add(next)
	return acc
}

func referenceConfig(c FlowReferenceConfig) classify.ReferenceConfig {
	rc := classify.ReferenceConfig{
		NameColumn:  c.NameColumn,
		LabelColumn: c.LabelColumn,
	}
	rc.Reader = readerConfig(FlowSourceConfig{Delimiter: c.Delimiter})
	return rc
}

// loadReference builds the trie unless only remote workers need it.
func loadReference(ctx context.Context, cfg FlowConfig) (*trie.Trie[classify.Label], error) {
	if cfg.Transform.Runner == "grpc" && cfg.Transform.Spawn == 0 {
		return nil, nil
	}
	t, ls, err := classify.LoadReferenceFile(ctx, cfg.Reference.Path, referenceConfig(cfg.Reference))
	if err != nil {
		return nil, err
	}
	log.Infof("[Flow] reference %s: %d names from %d rows, %d skipped",
		cfg.Reference.Path, t.Len(), ls.Rows, ls.Skipped)
	return t, nil
}

// runPartnerJob classifies every partner row and counts labels per entity.
// The folded counts are returned for a following category job.
func runPartnerJob(ctx context.Context, env *jobEnv) (jr *JobReport, value stats.Partial, err error) {
	cfg := env.cfg
	jr = &JobReport{Job: JobPartners}
	started := time.Now()
	defer func() {
		jr.Durations.TotalDuration = time.Since(started)
		finishRun[stats.Partial](env, jr, started, err)
	}()

	sSource := time.Now()
	files, err := resolveInputs(ctx, cfg.Source)
	if err != nil {
		return jr, nil, err
	}
	t, err := loadReference(ctx, cfg)
	if err != nil {
		return jr, nil, err
	}
	jr.Durations.SourceDuration = time.Since(sSource)

	runner, err := runnerFor(cfg.Transform.Runner)
	if err != nil {
		return jr, nil, err
	}
	fields := worker.Fields{NameField: cfg.Transform.NameField, EntityField: cfg.Transform.EntityField}
	sess, err := runner.Open(ctx, RunConfig{
		Trie:       t,
		Fields:     fields,
		Workers:    cfg.Transform.Workers,
		QueueDepth: cfg.Transform.QueueDepth,
		Addrs:      cfg.Transform.Addrs,
		Spawn:      cfg.Transform.Spawn,
		Port:       cfg.Transform.Port,
		PerWorker:  cfg.Transform.PerWorker,
	})
	if err != nil {
		return jr, nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warnf("[Flow] close runner: %v", cerr)
		}
	}()

	rc, err := reduceConfig[stats.Partial](env, JobPartners)
	if err != nil {
		return jr, nil, err
	}
	src := newBatchSource(files, readerConfig(cfg.Source))
	defer src.Close()
	units := mapreduce.SourceFunc[stats.Partial](func(ctx context.Context) (mapreduce.Task[stats.Partial], error) {
		b, id, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		return sess.Task(id, b), nil
	})

	sTransform := time.Now()
	res, err := mapreduce.Reduce(ctx, sess.Pool(), units, mergePartials, rc)
	jr.Durations.TransformDuration = time.Since(sTransform)
	summarize(jr, res)
	jr.Read = src.Stats()
	if err != nil {
		return jr, nil, err
	}
	value = res.Value
	if value == nil {
		value = stats.Partial{}
	}

	rows := stats.Finalize(value)
	jr.Rows = len(rows)
	if !jr.Complete {
		log.Warnf("[Flow] partners: writing INCOMPLETE statistics (%d units skipped)", jr.Skipped)
	}
	sSink := time.Now()
	if err := writeEntitySinks(ctx, env, rows); err != nil {
		return jr, value, err
	}
	jr.Durations.SinkDuration = time.Since(sSink)
	log.Infof("[Flow] %v", jr)
	return jr, value, nil
}
