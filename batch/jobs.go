package batch

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/store"
)

// JobReport summarizes one job of a flow.
type JobReport struct {
	Job       string
	Units     int
	Succeeded int
	Restored  int
	Skipped   int
	Abandoned int
	Complete  bool
	Failures  []string
	// Rows is the number of output rows written to every sink.
	Rows int
	Read reader.Stats
	// Join and BadCodes are only set by the category job.
	Join      stats.JoinStats
	BadCodes  int64
	Durations FlowBenchmarkResult
}

func (r JobReport) String() string {
	state := "complete"
	if !r.Complete {
		state = "INCOMPLETE"
	}
	return fmt.Sprintf("%s %s: %d units (%d restored), %d skipped, %d abandoned, %d rows read, %d rows written",
		r.Job, state, r.Units, r.Restored, r.Skipped, r.Abandoned, r.Read.Rows, r.Rows)
}

func summarize[P any](jr *JobReport, res mapreduce.Result[P]) {
	jr.Units = res.Units
	jr.Succeeded = res.Succeeded
	jr.Restored = res.Restored
	jr.Skipped = res.Skipped
	jr.Abandoned = res.Abandoned
	jr.Complete = res.Complete()
	for _, f := range res.Failures {
		jr.Failures = append(jr.Failures, f.Error())
	}
}

// jobEnv is what the jobs of one flow share.
type jobEnv struct {
	cfg     FlowConfig
	runID   string
	backend store.Backend
	hooks   FlowHooks
}

func (env *jobEnv) checkpointBucket(job string) string {
	return env.runID + "/" + job
}

// reduceConfig builds the driver configuration of job. Without resume the
// checkpoints of an earlier run with the same id are discarded.
func reduceConfig[P any](env *jobEnv, job string) (mapreduce.Config[P], error) {
	policy, err := mapreduce.ParsePolicy(env.cfg.Transform.Policy)
	if err != nil {
		return mapreduce.Config[P]{}, err
	}
	timeout, err := parseUnitTimeout(env.cfg.Transform.UnitTimeout)
	if err != nil {
		return mapreduce.Config[P]{}, err
	}
	rc := mapreduce.Config[P]{Policy: policy, UnitTimeout: timeout}
	if env.backend != nil {
		cp := store.NewCheckpoints[P](env.backend, env.checkpointBucket(job))
		if !env.cfg.Store.Resume {
			if err := cp.Clear(); err != nil {
				return rc, err
			}
		}
		rc.Checkpoint = cp
	}
	if env.hooks.OnUnit != nil {
		rc.OnOutcome = func(o mapreduce.Outcome[P]) {
			env.hooks.OnUnit(job, o.ID, o.Restored, o.Err)
		}
	}
	return rc, nil
}

// finishRun records how the job ended. Checkpoints of a complete run whose
// outputs were written are no longer needed.
func finishRun[P any](env *jobEnv, jr *JobReport, started time.Time, runErr error) {
	if env.backend == nil {
		return
	}
	info := store.RunInfo{
		ID:       env.runID + "/" + jr.Job,
		Job:      jr.Job,
		Started:  started,
		Finished: time.Now(),
		Units:    jr.Units,
		Skipped:  jr.Skipped,
		Complete: jr.Complete && runErr == nil,
		Rows:     jr.Rows,
	}
	if err := store.PutRun(env.backend, info); err != nil {
		log.Warnf("[Flow] record run %s: %v", info.ID, err)
	}
	if jr.Complete && runErr == nil {
		cp := store.NewCheckpoints[P](env.backend, env.checkpointBucket(jr.Job))
		if err := cp.Clear(); err != nil {
			log.Warnf("[Flow] clear checkpoints of %s: %v", info.ID, err)
		}
	}
}
