// Package mocks provides a scripted rpc.WorkerClient.
package mocks

import (
	"context"
	"sync"

	"google.golang.org/grpc"

	"github.com/emptyOVO/mrkit-gender/rpc"
)

// WorkerClient records requests and answers with Reply/State or Err.
type WorkerClient struct {
	mu       sync.Mutex
	Requests []*rpc.AccumulateRequest
	Reply    func(in *rpc.AccumulateRequest) (*rpc.AccumulateReply, error)
	State    *rpc.WorkerState
	Err      error
}

func (c *WorkerClient) Accumulate(ctx context.Context, in *rpc.AccumulateRequest, opts ...grpc.CallOption) (*rpc.AccumulateReply, error) {
	c.mu.Lock()
	c.Requests = append(c.Requests, in)
	c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	if c.Reply == nil {
		return &rpc.AccumulateReply{UnitId: in.UnitId, Rows: int64(len(in.Rows))}, nil
	}
	return c.Reply(in)
}

func (c *WorkerClient) Health(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*rpc.WorkerState, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.State, nil
}

// Calls returns the number of Accumulate requests seen.
func (c *WorkerClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Requests)
}
