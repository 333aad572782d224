package worker

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"

	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/rpc"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/trie"
	"github.com/emptyOVO/mrkit-gender/worker/mocks"
)

func testTrie() *trie.Trie[classify.Label] {
	t := trie.New[classify.Label]()
	t.Insert("MARIA", classify.Female)
	t.Insert("JOAO", classify.Male)
	return t
}

// startBufWorker serves wr over an in-memory listener and returns a client.
func startBufWorker(t *testing.T, wr *Worker) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, lis, wr, 0) }()

	c, err := Dial(context.Background(), "passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	if err != nil {
		cancel()
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() {
		c.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	return c
}

func partnerBatch(t *testing.T, start int64, rows ...[]string) *reader.Batch {
	t.Helper()
	schema := reader.MustSchema("cnpj", "nome_socio", "qualificacao")
	b := &reader.Batch{Schema: schema, Start: start}
	for _, r := range rows {
		rec, err := reader.NewRecord(schema, r)
		if err != nil {
			t.Fatal(err)
		}
		b.Records = append(b.Records, rec)
	}
	return b
}

func TestWorkerRoundTrip(t *testing.T) {
	wr := NewWorker(testTrie(), Fields{})
	c := startBufWorker(t, wr)

	if c.State == nil || c.State.Uuid != wr.UUID || c.State.Names != 2 {
		t.Fatalf("unexpected state %+v", c.State)
	}

	b := partnerBatch(t, 40,
		[]string{"1", "Maria Silva", "49"},
		[]string{"1", "João Souza", "22"},
		[]string{"2", "Xyzzy, the \"great\"", "49"},
	)
	p, err := NewRemoteTask("unit-1", b, c, Fields{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := stats.Partial{"1": {M: 1, F: 1}, "2": {U: 1}}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("partial = %v, want %v", p, want)
	}

	st, err := c.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Served != 1 || st.State != rpc.WorkerState_IDLE {
		t.Errorf("state after one unit = %+v", st)
	}
}

func TestWireMessages(t *testing.T) {
	b := partnerBatch(t, 40, []string{"1", "MARIA, DA SILVA", ""}, []string{"2", "JOAO", "49"})
	data, err := proto.Marshal(encodeBatch("u-40", b, Fields{NameField: "nome_socio"}))
	if err != nil {
		t.Fatal(err)
	}
	var req rpc.AccumulateRequest
	if err := proto.Unmarshal(data, &req); err != nil {
		t.Fatal(err)
	}
	if req.GetUnitId() != "u-40" || req.GetNameField() != "nome_socio" || len(req.GetRows()) != 2 {
		t.Fatalf("request = %v", &req)
	}
	got, err := decodeBatch(&req)
	if err != nil {
		t.Fatal(err)
	}
	if got.Start != 40 || got.Len() != 2 || !reflect.DeepEqual(got.Records[0].Values(), b.Records[0].Values()) {
		t.Errorf("decoded batch start=%d len=%d first=%v", got.Start, got.Len(), got.Records[0].Values())
	}

	p := stats.Partial{"1": {F: 1}, "2": {M: 2, U: 1}}
	data, err = proto.Marshal(&rpc.AccumulateReply{UnitId: "u-40", Rows: 2, Partial: encodePartial(p)})
	if err != nil {
		t.Fatal(err)
	}
	var reply rpc.AccumulateReply
	if err := proto.Unmarshal(data, &reply); err != nil {
		t.Fatal(err)
	}
	if back := decodePartial(reply.GetPartial()); !reflect.DeepEqual(back, p) {
		t.Errorf("partial = %v, want %v", back, p)
	}
	if rpc.WorkerState_BUSY.String() != "BUSY" {
		t.Errorf("state name = %s", rpc.WorkerState_BUSY)
	}
}

func TestWorkerCustomFields(t *testing.T) {
	c := startBufWorker(t, NewWorker(testTrie(), Fields{}))
	schema := reader.MustSchema("id", "name")
	rec, _ := reader.NewRecord(schema, []string{"7", "maria"})
	b := &reader.Batch{Schema: schema, Records: []reader.Record{rec}}

	p, err := c.Accumulate(context.Background(), "u", b, Fields{NameField: "name", EntityField: "id"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, stats.Partial{"7": {F: 1}}) {
		t.Errorf("partial = %v", p)
	}

	// the worker defaults do not match this schema
	_, err = c.Accumulate(context.Background(), "u", b, Fields{})
	if err == nil {
		t.Fatal("expected an error for a batch without the name column")
	}
}

func TestWorkerRejectsBadRows(t *testing.T) {
	wr := NewWorker(testTrie(), Fields{})
	_, err := wr.Accumulate(context.Background(), &rpc.AccumulateRequest{
		UnitId:  "u",
		Columns: []string{"cnpj", "nome_socio"},
		Rows:    []*rpc.Row{{Values: []string{"1"}}},
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestClientErrors(t *testing.T) {
	b := partnerBatch(t, 0, []string{"1", "MARIA", ""})

	m := &mocks.WorkerClient{Err: status.Error(codes.Unavailable, "connection refused")}
	if _, err := NewClient("w1", m).Accumulate(context.Background(), "u", b, Fields{}); err == nil {
		t.Error("expected an error from an unavailable worker")
	}

	m = &mocks.WorkerClient{Err: status.Error(codes.DeadlineExceeded, "slow")}
	_, err := NewClient("w1", m).Accumulate(context.Background(), "u", b, Fields{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m = &mocks.WorkerClient{Err: status.Error(codes.Canceled, "canceled")}
	if _, err := NewClient("w1", m).Accumulate(ctx, "u", b, Fields{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	// a reply that lost rows is not trusted
	m = &mocks.WorkerClient{Reply: func(in *rpc.AccumulateRequest) (*rpc.AccumulateReply, error) {
		return &rpc.AccumulateReply{UnitId: in.UnitId, Rows: 0}, nil
	}}
	if _, err := NewClient("w1", m).Accumulate(context.Background(), "u", b, Fields{}); err == nil {
		t.Error("expected a row count mismatch error")
	}
	if m.Calls() != 1 || m.Requests[0].Columns[1] != "nome_socio" {
		t.Errorf("request not recorded: %+v", m.Requests)
	}
}

func TestDialIncompatibleVersion(t *testing.T) {
	m := &mocks.WorkerClient{State: &rpc.WorkerState{Version: "v2.0.0"}}
	c := NewClient("w1", m)
	if err := c.waitReady(context.Background()); !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("expected ErrIncompatibleVersion, got %v", err)
	}
}

func TestBalancer(t *testing.T) {
	if _, err := NewBalancer(nil); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("expected ErrNoWorkers, got %v", err)
	}
	clients := []*Client{NewClient("a", &mocks.WorkerClient{}), NewClient("b", &mocks.WorkerClient{})}
	bal, err := NewBalancer(clients)
	if err != nil {
		t.Fatal(err)
	}
	if bal.Pick("unit-1") != bal.Pick("unit-1") {
		t.Error("a unit must always map to the same worker")
	}
	task := bal.Task("unit-9", partnerBatch(t, 0), Fields{})
	if task.ID() != "unit-9" {
		t.Errorf("task id = %s", task.ID())
	}
	if err := bal.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestLoadWorker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nomes.csv")
	if err := os.WriteFile(path, []byte("first_name,classification\nANA,F\nPEDRO,M\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wr, err := LoadWorker(context.Background(), ServerConfig{Reference: path})
	if err != nil {
		t.Fatal(err)
	}
	st, _ := wr.Health(context.Background(), &rpc.Empty{})
	if st.Names != 2 || st.Version != ProtocolVersion {
		t.Errorf("state = %+v", st)
	}
	if _, err := LoadWorker(context.Background(), ServerConfig{Reference: filepath.Join(t.TempDir(), "missing.csv")}); err == nil {
		t.Error("expected an error for a missing reference table")
	}
}
