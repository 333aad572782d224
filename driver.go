// Package mapreduce fans units of work out to a pool and folds their partial
// results in completion order.
package mapreduce

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Policy decides what a failed unit does to the run.
type Policy int

const (
	// FailFast cancels outstanding units on the first failure.
	FailFast Policy = iota
	// BestEffort skips failed units and marks the result incomplete.
	BestEffort
)

func (p Policy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "fail-fast"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "best-effort", "besteffort":
		return BestEffort, nil
	}
	return FailFast, fmt.Errorf("unknown failure policy: %q", s)
}

// MergeFunc folds next into acc and returns the new accumulator. It may reuse
// acc; it is only ever called from the goroutine running Reduce.
type MergeFunc[P any] func(acc, next P) P

// Checkpoint persists finished partials so a rerun can skip their units.
type Checkpoint[P any] interface {
	Load(unitID string) (P, bool, error)
	Save(unitID string, p P) error
}

type Config[P any] struct {
	Policy Policy
	// UnitTimeout bounds each unit; zero means no limit.
	UnitTimeout time.Duration
	Checkpoint  Checkpoint[P]
	// OnOutcome is called by the folding goroutine for every outcome.
	OnOutcome func(Outcome[P])
}

// Result is the folded value of a run together with how it was obtained.
type Result[P any] struct {
	Value P
	// Seeded is false when no unit succeeded and Value is the zero value.
	Seeded    bool
	Units     int
	Succeeded int
	Restored  int
	// Skipped counts units that failed.
	Skipped int
	// Abandoned counts units interrupted by cancellation of the run.
	Abandoned int
	Failures  []*UnitError
	Cancelled bool
}

// Complete reports whether every unit of the source was folded in.
func (r Result[P]) Complete() bool {
	return r.Skipped == 0 && r.Abandoned == 0 && !r.Cancelled
}

func (r Result[P]) String() string {
	state := "complete"
	if !r.Complete() {
		state = "INCOMPLETE"
	}
	return fmt.Sprintf("%s: %d units, %d succeeded (%d restored), %d skipped, %d abandoned",
		state, r.Units, r.Succeeded, r.Restored, r.Skipped, r.Abandoned)
}

// Reduce submits every task of source to pool and folds the outcomes with
// merge as they complete. The first successful partial seeds the result.
//
// Under FailFast the first failure cancels the run and is returned as a
// *UnitError, along with everything folded so far. Under BestEffort failures
// are recorded in the result. When ctx is cancelled submission stops, the
// partials already received are kept and ctx.Err() is returned.
func Reduce[P any](ctx context.Context, pool Pool[P], source Source[P], merge MergeFunc[P], cfg Config[P]) (Result[P], error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	restoredCh := make(chan Outcome[P])
	errCh := make(chan error, 1)
	go func() {
		defer close(restoredCh)
		defer pool.Close()
		if err := produce(runCtx, pool, source, cfg, restoredCh); err != nil {
			errCh <- err
			cancel()
		}
	}()

	var (
		res      Result[P]
		firstErr *UnitError
	)
	completed := pool.Completed()
	restored := (<-chan Outcome[P])(restoredCh)
	for completed != nil || restored != nil {
		var (
			o  Outcome[P]
			ok bool
		)
		select {
		case o, ok = <-completed:
			if !ok {
				completed = nil
				continue
			}
		case o, ok = <-restored:
			if !ok {
				restored = nil
				continue
			}
		}
		res.Units++
		if cfg.OnOutcome != nil {
			cfg.OnOutcome(o)
		}

		if o.Err != nil {
			if runCtx.Err() != nil && errors.Is(o.Err, context.Canceled) {
				res.Abandoned++
				log.Tracef("[Driver] unit %s abandoned", o.ID)
				continue
			}
			ue := &UnitError{Unit: o.ID, Err: o.Err}
			res.Skipped++
			res.Failures = append(res.Failures, ue)
			log.Warnf("[Driver] %v", ue)
			if cfg.Policy == FailFast && firstErr == nil {
				firstErr = ue
				cancel()
			}
			continue
		}

		if !o.Restored && cfg.Checkpoint != nil {
			if err := cfg.Checkpoint.Save(o.ID, o.Partial); err != nil {
				log.Warnf("[Driver] checkpoint unit %s: %v", o.ID, err)
			}
		}
		if !res.Seeded {
			res.Value = o.Partial
			res.Seeded = true
		} else {
			res.Value = merge(res.Value, o.Partial)
		}
		res.Succeeded++
		if o.Restored {
			res.Restored++
		}
		log.Tracef("[Driver] folded unit %s (%v)", o.ID, o.Elapsed)
	}

	select {
	case err := <-errCh:
		res.Cancelled = true
		return res, fmt.Errorf("reading units: %w", err)
	default:
	}
	if firstErr != nil {
		return res, firstErr
	}
	if err := ctx.Err(); err != nil {
		res.Cancelled = true
		return res, err
	}
	log.Infof("[Driver] %v", res)
	return res, nil
}

// produce feeds the pool until the source is exhausted or the run stops.
// Units with a stored checkpoint are not run; their partial is handed to the
// folding goroutine directly.
func produce[P any](ctx context.Context, pool Pool[P], source Source[P], cfg Config[P], restored chan<- Outcome[P]) error {
	for {
		t, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if cfg.Checkpoint != nil {
			p, ok, err := cfg.Checkpoint.Load(t.ID())
			if err != nil {
				log.Warnf("[Driver] load checkpoint of unit %s: %v", t.ID(), err)
			}
			if ok && err == nil {
				select {
				case restored <- Outcome[P]{ID: t.ID(), Partial: p, Restored: true}:
					continue
				case <-ctx.Done():
					return nil
				}
			}
		}
		if err := pool.Submit(ctx, withTimeout(t, cfg.UnitTimeout)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}
