package mapreduce

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// DefaultPort is where the first worker listens when no port is given.
const DefaultPort = 10000

// ExpandInputs expands glob patterns into a sorted, de-duplicated file list.
// A pattern matching nothing is an error.
func ExpandInputs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input %q: no such file", p)
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, err
			}
			if !seen[abs] {
				seen[abs] = true
				files = append(files, abs)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// splitAddr accepts "host:port", ":port" or a bare port.
func splitAddr(addr string) (string, int) {
	raw := strings.TrimSpace(addr)
	if raw == "" {
		return "", DefaultPort
	}
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		host, port = "", raw
	}
	p, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil || p < 0 {
		return host, DefaultPort
	}
	return host, p
}

// listenWithRetry listens on startPort, moving step ports up while the port
// is taken. Port 0 asks the kernel for any free port.
func listenWithRetry(host string, startPort int, step int) (net.Listener, error) {
	const maxAttempts = 128
	if startPort == 0 {
		return net.Listen("tcp", net.JoinHostPort(host, "0"))
	}
	if step <= 0 {
		step = 1
	}
	for i := 0; i < maxAttempts; i++ {
		addr := net.JoinHostPort(host, strconv.Itoa(startPort+i*step))
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			if errors.Is(err, syscall.EADDRINUSE) {
				log.Warnf("[Launcher] listen %s occupied, trying next port", addr)
				continue
			}
			return nil, err
		}
		return lis, nil
	}
	return nil, fmt.Errorf("unable to find available worker port from %d after %d attempts", startPort, maxAttempts)
}
