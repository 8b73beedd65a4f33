package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeScript(t *testing.T, path string, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

// testPaths lays out templates, datasets and workloads under dir.
func testPaths(t *testing.T, dir string) Paths {
	t.Helper()
	paths := Paths{
		DatasetDir:        filepath.Join(dir, "datasets"),
		WorkloadDir:       filepath.Join(dir, "workloads"),
		ConfigPath:        filepath.Join(dir, "qsconfig.json"),
		InputPath:         filepath.Join(dir, "edge.csv"),
		OptimizedTemplate: filepath.Join(dir, "qsconfig-opt.json"),
		BaselineTemplate:  filepath.Join(dir, "qsconfig-base.json"),
	}
	writeFile(t, paths.OptimizedTemplate, "optimizer=on\n")
	writeFile(t, paths.BaselineTemplate, "optimizer=off\n")
	for _, dataset := range []string{"vec", "wiki", "twitter"} {
		writeFile(t, filepath.Join(paths.DatasetDir, dataset, dataset+".csv"), fmt.Sprintf("1,2 # %v\n", dataset))
		writeFile(t, filepath.Join(paths.DatasetDir, dataset, dataset+"-w.csv"), fmt.Sprintf("1,2,0.5 # %v weighted\n", dataset))
	}
	for _, workload := range []string{"tc", "tc-opt", "cc", "cc-opt", "sssp", "sssp-opt"} {
		writeFile(t, filepath.Join(paths.WorkloadDir, workload), fmt.Sprintf("run %v\n", workload))
	}
	return paths
}

// listenAddr opens a real listener standing in for the engine's network mode.
func listenAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })
	return listener.Addr().String()
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

// testEngine wires fake engine scripts: the server branch records its pid and
// sleeps, the interactive branch echoes the query it got on stdin, the client
// captures its stdin and exits with clientExit.
func testEngine(t *testing.T, dir string, addr string, clientExit int) *Engine {
	t.Helper()
	serverBin := filepath.Join(dir, "engine")
	clientBin := filepath.Join(dir, "client")
	writeScript(t, serverBin, fmt.Sprintf(
		`if [ "$1" = "-mode=network" ]; then echo $$ > %v; exec sleep 60; fi
read query
echo "$query"`,
		filepath.Join(dir, "server.pid")))
	writeScript(t, clientBin, fmt.Sprintf("cat > %v\nexit %v", filepath.Join(dir, "client.in"), clientExit))
	return &Engine{
		ServerBin:  serverBin,
		ClientBin:  clientBin,
		Addr:       addr,
		ServerArgs: []string{"-mode=network"},
		Paths:      testPaths(t, dir),
	}
}

func requireServerGone(t *testing.T, dir string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "server.pid"))
	require.NoError(t, err, "server was never started")
	pid := 0
	_, err = fmt.Sscanf(string(data), "%d", &pid)
	require.NoError(t, err)
	process, err := os.FindProcess(pid)
	require.NoError(t, err)
	// a reaped process rejects signal 0
	require.Error(t, process.Signal(syscall.Signal(0)))
}
