package batch

import (
	"context"
	"fmt"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
)

// LocalRunner classifies and accumulates units on goroutines of this process.
type LocalRunner struct{}

func (LocalRunner) Open(ctx context.Context, cfg RunConfig) (Session, error) {
	if cfg.Trie == nil {
		return nil, fmt.Errorf("local runner needs the reference trie")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &localSession{
		cfg:        cfg,
		classifier: classify.NewClassifier(cfg.Trie, classify.Config{NameField: cfg.Fields.NameField}),
		stats:      stats.Config{EntityField: cfg.Fields.EntityField},
	}, nil
}

type localSession struct {
	cfg        RunConfig
	classifier *classify.Classifier
	stats      stats.Config
}

func (s *localSession) Pool() mapreduce.Pool[stats.Partial] {
	return mapreduce.NewLocalPool[stats.Partial](s.cfg.Workers, s.cfg.QueueDepth)
}

func (s *localSession) Task(unitID string, b *reader.Batch) mapreduce.Task[stats.Partial] {
	return mapreduce.NewTask(unitID, func(ctx context.Context) (stats.Partial, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		classified, err := s.classifier.Classify(b)
		if err != nil {
			return nil, err
		}
		return stats.Accumulate(classified, s.stats)
	})
}

func (s *localSession) Close() error {
	return nil
}
