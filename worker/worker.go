// Package worker serves partner units over gRPC and provides the coordinator
// side client that ships batches to it.
package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/rpc"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/trie"
)

// Fields names the partner columns a unit is classified and grouped by.
// Empty fields fall back to the worker's configuration.
type Fields struct {
	NameField   string `json:"name_field"`
	EntityField string `json:"entity_field"`
}

// Worker classifies and accumulates batches with its own copy of the
// reference trie.
type Worker struct {
	UUID       string
	State      rpc.WorkerState_State
	classifier *classify.Classifier
	fields     Fields
	active     int
	served     int64
	mux        sync.Mutex
	rpc.UnimplementedWorkerServer
}

func NewWorker(t *trie.Trie[classify.Label], f Fields) *Worker {
	if f.NameField == "" {
		f.NameField = classify.DefaultNameField
	}
	if f.EntityField == "" {
		f.EntityField = classify.DefaultEntityField
	}
	return &Worker{
		UUID:       uuid.New().String(),
		State:      rpc.WorkerState_IDLE,
		classifier: classify.NewClassifier(t, classify.Config{NameField: f.NameField}),
		fields:     f,
	}
}

// gRPC functions

func (wr *Worker) Accumulate(ctx context.Context, in *rpc.AccumulateRequest) (*rpc.AccumulateReply, error) {
	log.Tracef("[Worker] Start unit %s (%d rows)", in.UnitId, len(in.Rows))
	wr.begin()
	defer wr.end()

	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	b, err := decodeBatch(in)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "unit %s: %v", in.UnitId, err)
	}

	ccfg := wr.classifier.Config()
	if in.NameField != "" {
		ccfg.NameField = in.NameField
	}
	entity := wr.fields.EntityField
	if in.EntityField != "" {
		entity = in.EntityField
	}

	classified, err := wr.classifier.ClassifyWith(b, ccfg)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "unit %s: %v", in.UnitId, err)
	}
	p, err := stats.Accumulate(classified, stats.Config{EntityField: entity, LabelField: ccfg.LabelField})
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "unit %s: %v", in.UnitId, err)
	}

	wr.mux.Lock()
	wr.served++
	wr.mux.Unlock()
	log.Tracef("[Worker] End unit %s: %d entities", in.UnitId, len(p))
	return &rpc.AccumulateReply{
		UnitId:  in.UnitId,
		Rows:    int64(len(b.Records)),
		Partial: encodePartial(p),
	}, nil
}

func (wr *Worker) Health(ctx context.Context, in *rpc.Empty) (*rpc.WorkerState, error) {
	log.Trace("[Worker] Health Check")

	wr.mux.Lock()
	defer wr.mux.Unlock()
	return &rpc.WorkerState{
		State:   wr.State,
		Uuid:    wr.UUID,
		Version: ProtocolVersion,
		Names:   int64(wr.classifier.Names()),
		Served:  wr.served,
	}, nil
}

func (wr *Worker) begin() {
	wr.mux.Lock()
	wr.active++
	wr.State = rpc.WorkerState_BUSY
	wr.mux.Unlock()
}

func (wr *Worker) end() {
	wr.mux.Lock()
	wr.active--
	if wr.active == 0 {
		wr.State = rpc.WorkerState_IDLE
	}
	wr.mux.Unlock()
}
