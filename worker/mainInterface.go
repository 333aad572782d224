package worker

import (
	"context"
	"errors"
	"net"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/rpc"
)

// ServerConfig configures a worker process.
type ServerConfig struct {
	// Reference is the path of the first_name,classification table.
	Reference       string                   `json:"reference"`
	ReferenceConfig classify.ReferenceConfig `json:"reference_config"`
	Fields          Fields                   `json:"fields"`
	MaxMsgBytes     int                      `json:"max_msg_bytes"`
}

func (c *ServerConfig) WithDefaults() {
	if c.MaxMsgBytes <= 0 {
		c.MaxMsgBytes = DefaultMaxMsgBytes
	}
	c.ReferenceConfig.WithDefaults()
}

// NewServer registers wr on a fresh gRPC server.
func NewServer(wr *Worker, maxMsgBytes int) *grpc.Server {
	if maxMsgBytes <= 0 {
		maxMsgBytes = DefaultMaxMsgBytes
	}
	s := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxMsgBytes),
		grpc.MaxSendMsgSize(maxMsgBytes),
	)
	rpc.RegisterWorkerServer(s, wr)
	return s
}

// Serve runs wr on lis until ctx is done, then drains in-flight units.
func Serve(ctx context.Context, lis net.Listener, wr *Worker, maxMsgBytes int) error {
	s := NewServer(wr, maxMsgBytes)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(lis)
	}()
	log.Infof("[Worker] %s serving on %s", wr.UUID, lis.Addr())

	select {
	case <-ctx.Done():
		log.Infof("[Worker] %s stopping", wr.UUID)
		s.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// LoadWorker builds a worker from the reference table named in cfg.
func LoadWorker(ctx context.Context, cfg ServerConfig) (*Worker, error) {
	cfg.WithDefaults()
	t, _, err := classify.LoadReferenceFile(ctx, cfg.Reference, cfg.ReferenceConfig)
	if err != nil {
		return nil, err
	}
	return NewWorker(t, cfg.Fields), nil
}

// StartWorker loads the reference table and serves on lis until ctx is done.
func StartWorker(ctx context.Context, lis net.Listener, cfg ServerConfig) error {
	cfg.WithDefaults()
	wr, err := LoadWorker(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("[Worker] reference table loaded")
	return Serve(ctx, lis, wr, cfg.MaxMsgBytes)
}
