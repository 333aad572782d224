package mapreduce

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/worker"
)

// ConnectWorkers dials every address concurrently and checks that each
// worker speaks a compatible protocol.
func ConnectWorkers(ctx context.Context, addrs []string) (*worker.Balancer, error) {
	clients := make([]*worker.Client, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	for i, addr := range addrs {
		i, addr := i, addr
		g.Go(func() error {
			c, err := worker.Dial(gctx, addr)
			if err != nil {
				return err
			}
			clients[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, c := range clients {
			if c != nil {
				c.Close()
			}
		}
		return nil, err
	}
	return worker.NewBalancer(clients)
}

// NewRemotePool returns a pool sized for the workers behind b. Its tasks are
// worker.RemoteTask values, so the goroutines only wait on the network.
func NewRemotePool(b *worker.Balancer, perWorker int) *LocalPool[stats.Partial] {
	if perWorker <= 0 {
		perWorker = 1
	}
	n := b.Len() * perWorker
	return NewLocalPool[stats.Partial](n, n)
}
