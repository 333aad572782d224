package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/trie"
	"github.com/emptyOVO/mrkit-gender/worker"
)

// RunConfig describes how partner units are executed.
type RunConfig struct {
	// Trie is nil when only remote workers classify.
	Trie       *trie.Trie[classify.Label]
	Fields     worker.Fields
	Workers    int
	QueueDepth int
	Addrs      []string
	Spawn      int
	Port       int
	PerWorker  int
}

// Runner abstracts where partner units run.
type Runner interface {
	Open(ctx context.Context, cfg RunConfig) (Session, error)
}

// Session hands out the pool and tasks of one run.
type Session interface {
	// Pool returns a fresh pool; Reduce closes it.
	Pool() mapreduce.Pool[stats.Partial]
	Task(unitID string, b *reader.Batch) mapreduce.Task[stats.Partial]
	Close() error
}

var (
	runnersMu sync.RWMutex
	runners   = map[string]Runner{
		"local": LocalRunner{},
		"grpc":  GRPCRunner{},
	}
)

// RegisterRunner makes r selectable as transform.runner=name. Registering
// an existing name replaces it.
func RegisterRunner(name string, r Runner) {
	if r == nil {
		return
	}
	runnersMu.Lock()
	defer runnersMu.Unlock()
	runners[name] = r
}

func runnerFor(name string) (Runner, error) {
	runnersMu.RLock()
	defer runnersMu.RUnlock()
	r, ok := runners[name]
	if !ok {
		names := make([]string, 0, len(runners))
		for n := range runners {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unsupported transform.runner: %q (have %v)", name, names)
	}
	return r, nil
}
