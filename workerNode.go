package mapreduce

import (
	"context"

	"github.com/emptyOVO/mrkit-gender/worker"
)

// StartWorker runs one worker process listening on addr, or on the next free
// port above it, until ctx is done.
func StartWorker(ctx context.Context, addr string, cfg worker.ServerConfig) error {
	host, port := splitAddr(addr)
	lis, err := listenWithRetry(host, port, 1)
	if err != nil {
		return err
	}
	return worker.StartWorker(ctx, lis, cfg)
}
