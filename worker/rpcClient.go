package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/rpc"
	"github.com/emptyOVO/mrkit-gender/stats"
)

// DefaultMaxMsgBytes bounds a single batch on the wire.
const DefaultMaxMsgBytes = 256 << 20

// Client is the coordinator side of one worker.
type Client struct {
	Addr   string
	State  *rpc.WorkerState
	worker rpc.WorkerClient
	conn   *grpc.ClientConn
}

// NewClient wraps an existing worker client, e.g. one built over a test
// connection.
func NewClient(addr string, wc rpc.WorkerClient) *Client {
	return &Client{Addr: addr, worker: wc}
}

// Dial connects to the worker at addr and waits until it answers a health
// check with a compatible protocol version.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(DefaultMaxMsgBytes),
			grpc.MaxCallSendMsgSize(DefaultMaxMsgBytes),
		),
	}
	conn, err := grpc.NewClient(addr, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial worker %s: %w", addr, err)
	}
	c := &Client{Addr: addr, worker: rpc.NewWorkerClient(conn), conn: conn}
	if err := c.waitReady(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) waitReady(ctx context.Context) error {
	const (
		maxAttempts = 40
		backoff     = 200 * time.Millisecond
	)
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		callCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		st, err := c.worker.Health(callCtx, &rpc.Empty{})
		cancel()
		if err == nil {
			if !IsCompatibleVersion(st.Version) {
				return fmt.Errorf("%w: worker %s speaks %q, want %s", ErrIncompatibleVersion, c.Addr, st.Version, ProtocolVersion)
			}
			c.State = st
			log.Infof("[Client] worker %s ready (%s, %d names)", c.Addr, st.Uuid, st.Names)
			return nil
		}
		lastErr = err
		if code := status.Code(err); code != codes.Unavailable && code != codes.DeadlineExceeded {
			return fmt.Errorf("health check %s: %w", c.Addr, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("worker %s not ready after %d attempts: %w", c.Addr, maxAttempts, lastErr)
}

func (c *Client) Health(ctx context.Context) (*rpc.WorkerState, error) {
	return c.worker.Health(ctx, &rpc.Empty{})
}

// Accumulate ships b to the worker and returns the partial it computed.
func (c *Client) Accumulate(ctx context.Context, unitID string, b *reader.Batch, f Fields) (stats.Partial, error) {
	r, err := c.worker.Accumulate(ctx, encodeBatch(unitID, b, f))
	if err != nil {
		return nil, fromStatus(ctx, c.Addr, err)
	}
	if r.Rows != int64(b.Len()) {
		return nil, fmt.Errorf("worker %s accounted %d of %d rows", c.Addr, r.Rows, b.Len())
	}
	return decodePartial(r.Partial), nil
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// fromStatus turns a gRPC status back into the context error it stands for,
// so the driver can tell cancellation from failure.
func fromStatus(ctx context.Context, addr string, err error) error {
	switch status.Code(err) {
	case codes.Canceled:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("worker %s: %w", addr, context.Canceled)
	case codes.DeadlineExceeded:
		return fmt.Errorf("worker %s: %w", addr, context.DeadlineExceeded)
	}
	if s, ok := status.FromError(err); ok {
		return fmt.Errorf("worker %s: %s: %s", addr, s.Code(), s.Message())
	}
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("worker %s: %w", addr, err)
}
