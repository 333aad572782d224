package batch

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	mapreduce "github.com/emptyOVO/mrkit-gender"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/worker"
)

// GRPCRunner sends units to gRPC workers: the ones at cfg.Addrs, or
// cfg.Spawn workers it serves from this process.
type GRPCRunner struct{}

func (GRPCRunner) Open(ctx context.Context, cfg RunConfig) (Session, error) {
	s := &grpcSession{cfg: cfg}
	addrs := cfg.Addrs
	if cfg.Spawn > 0 {
		if cfg.Trie == nil {
			return nil, fmt.Errorf("spawning workers needs the reference trie")
		}
		// port 0 lets the kernel pick
		cluster, err := mapreduce.StartLocalCluster(ctx, cfg.Spawn, ":"+strconv.Itoa(cfg.Port), cfg.Trie, cfg.Fields)
		if err != nil {
			return nil, err
		}
		s.cluster = cluster
		addrs = cluster.Addrs
	}
	bal, err := mapreduce.ConnectWorkers(ctx, addrs)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.balancer = bal
	log.Infof("[Runner] %d grpc workers", bal.Len())
	return s, nil
}

type grpcSession struct {
	cfg      RunConfig
	cluster  *mapreduce.LocalCluster
	balancer *worker.Balancer
}

func (s *grpcSession) Pool() mapreduce.Pool[stats.Partial] {
	return mapreduce.NewRemotePool(s.balancer, s.cfg.PerWorker)
}

func (s *grpcSession) Task(unitID string, b *reader.Batch) mapreduce.Task[stats.Partial] {
	return s.balancer.Task(unitID, b, s.cfg.Fields)
}

func (s *grpcSession) Close() error {
	var err error
	if s.balancer != nil {
		err = s.balancer.Close()
	}
	if s.cluster != nil {
		if cerr := s.cluster.Stop(); err == nil {
			err = cerr
		}
	}
	return err
}
