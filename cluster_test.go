package mapreduce

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/emptyOVO/mrkit-gender/classify"
	"github.com/emptyOVO/mrkit-gender/reader"
	"github.com/emptyOVO/mrkit-gender/stats"
	"github.com/emptyOVO/mrkit-gender/trie"
	"github.com/emptyOVO/mrkit-gender/worker"
)

const partnersCSV = `cnpj,nome_socio
1,Maria Silva
1,João Souza
2,Xyzzy
2,ANA PAULA
3,maria
3,Joao
3,"Souza, Maria"
`

func namesTrie() *trie.Trie[classify.Label] {
	t := trie.New[classify.Label]()
	t.Insert("MARIA", classify.Female)
	t.Insert("JOAO", classify.Male)
	t.Insert("ANA", classify.Female)
	return t
}

func TestRemoteReduceMatchesLocal(t *testing.T) {
	ctx := context.Background()
	tr := namesTrie()
	cluster, err := StartLocalCluster(ctx, 2, "", tr, worker.Fields{})
	if err != nil {
		t.Fatalf("StartLocalCluster: %v", err)
	}
	defer func() {
		if err := cluster.Stop(); err != nil {
			t.Errorf("Stop: %v", err)
		}
	}()
	bal, err := ConnectWorkers(ctx, cluster.Addrs)
	if err != nil {
		t.Fatalf("ConnectWorkers: %v", err)
	}
	defer bal.Close()

	rd, err := reader.NewReader(strings.NewReader(partnersCSV), reader.Config{BatchSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	src := SourceFunc[stats.Partial](func(ctx context.Context) (Task[stats.Partial], error) {
		b, err := rd.Next(ctx)
		if err != nil {
			return nil, err
		}
		return bal.Task(fmt.Sprintf("unit-%d", b.Start), b, worker.Fields{}), nil
	})
	res, err := Reduce(ctx, NewRemotePool(bal, 2), src, mergePartials, Config[stats.Partial]{})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if !res.Complete() || res.Units != 4 {
		t.Errorf("result = %v", res)
	}
	// "Souza, Maria" is looked up by its first token, SOUZA, which is unknown
	want := stats.Partial{
		"1": {M: 1, F: 1},
		"2": {F: 1, U: 1},
		"3": {M: 1, F: 1, U: 1},
	}
	if !reflect.DeepEqual(res.Value, want) {
		t.Errorf("value = %v, want %v", res.Value, want)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"socios1.csv", "socios2.csv", "empresas.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := ExpandInputs([]string{filepath.Join(dir, "socios*.csv"), filepath.Join(dir, "socios1.csv")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "socios1.csv" {
		t.Errorf("files = %v", files)
	}
	if _, err := ExpandInputs([]string{filepath.Join(dir, "nothing*.csv")}); err == nil {
		t.Error("expected an error for a pattern matching nothing")
	}
}

func TestSplitAddr(t *testing.T) {
	tests := []struct {
		in   string
		host string
		port int
	}{
		{"", "", DefaultPort},
		{":10001", "", 10001},
		{"10002", "", 10002},
		{"127.0.0.1:0", "127.0.0.1", 0},
		{"worker-1:abc", "worker-1", DefaultPort},
	}
	for _, tt := range tests {
		host, port := splitAddr(tt.in)
		if host != tt.host || port != tt.port {
			t.Errorf("splitAddr(%q) = %q, %d", tt.in, host, port)
		}
	}
}

func TestListenWithRetrySkipsTakenPort(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()
	_, port := splitAddr(taken.Addr().String())

	lis, err := listenWithRetry("127.0.0.1", port, 1)
	if err != nil {
		t.Skipf("no free port next to %d: %v", port, err)
	}
	defer lis.Close()
	if _, got := splitAddr(lis.Addr().String()); got == port {
		t.Errorf("listened on the taken port %d", got)
	}
}
