package mapreduce

import (
	"context"
	"fmt"
	"net"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/trie"
	"github.com/emptyOVO/mrkit-gender/worker"
)

// LocalCluster is a set of gRPC workers served by this process. It runs the
// remote pool end to end on a single machine.
type LocalCluster struct {
	Addrs  []string
	cancel context.CancelFunc
	wg     sync.WaitGroup
	errCh  chan error
}

// StartLocalCluster serves n workers sharing the read-only trie t. Worker i
// listens from port base+i+1 upwards on its own candidate sequence; a zero
// base port lets the kernel pick.
func StartLocalCluster(ctx context.Context, n int, baseAddr string, t *trie.Trie[classify.Label], f worker.Fields) (*LocalCluster, error) {
	if n <= 0 {
		return nil, fmt.Errorf("need at least one worker, got %d", n)
	}
	host, base := splitAddr(baseAddr)
	if host == "" {
		// only this process dials these workers
		host = "127.0.0.1"
	}
	listeners := make([]net.Listener, 0, n)
	for i := 0; i < n; i++ {
		start := 0
		if base > 0 {
			start = base + i + 1
		}
		lis, err := listenWithRetry(host, start, n)
		if err != nil {
			for _, l := range listeners {
				l.Close()
			}
			return nil, err
		}
		listeners = append(listeners, lis)
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &LocalCluster{cancel: cancel, errCh: make(chan error, n)}
	for _, lis := range listeners {
		c.Addrs = append(c.Addrs, lis.Addr().String())
		wr := worker.NewWorker(t, f)
		c.wg.Add(1)
		go func(lis net.Listener) {
			defer c.wg.Done()
			if err := worker.Serve(ctx, lis, wr, 0); err != nil {
				c.errCh <- err
			}
		}(lis)
	}
	log.Infof("[Launcher] %d local workers on %v", n, c.Addrs)
	return c, nil
}

// Stop shuts every worker down and returns the first serve error.
func (c *LocalCluster) Stop() error {
	c.cancel()
	c.wg.Wait()
	close(c.errCh)
	for err := range c.errCh {
		return err
	}
	return nil
}
