package worker

import (
	"context"
	"errors"
	"hash/fnv"

	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
)

// RemoteTask runs one partner unit on a worker.
type RemoteTask struct {
	id     string
	batch  *reader.Batch
	client *Client
	fields Fields
}

func NewRemoteTask(id string, b *reader.Batch, c *Client, f Fields) *RemoteTask {
	return &RemoteTask{id: id, batch: b, client: c, fields: f}
}

func (t *RemoteTask) ID() string {
	return t.id
}

func (t *RemoteTask) Run(ctx context.Context) (stats.Partial, error) {
	return t.client.Accumulate(ctx, t.id, t.batch, t.fields)
}

// Balancer spreads units over a fixed set of workers. A unit id always maps
// to the same worker.
type Balancer struct {
	clients []*Client
}

func NewBalancer(clients []*Client) (*Balancer, error) {
	if len(clients) == 0 {
		return nil, ErrNoWorkers
	}
	return &Balancer{clients: clients}, nil
}

func (b *Balancer) Pick(unitID string) *Client {
	return b.clients[workerForKey(unitID, len(b.clients))]
}

// Task builds the remote task for a unit on the worker it maps to.
func (b *Balancer) Task(unitID string, batch *reader.Batch, f Fields) *RemoteTask {
	return NewRemoteTask(unitID, batch, b.Pick(unitID), f)
}

func (b *Balancer) Len() int {
	return len(b.clients)
}

func (b *Balancer) Close() error {
	var errs []error
	for _, c := range b.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func workerForKey(key string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()&0x7fffffff) % n
}
