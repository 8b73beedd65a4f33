package main

import (
	"context"
	"io"
	"os/exec"
	"path"
	"strings"
)

// Paths holds every canonical filesystem location one harness instance
// mutates. They are explicit state rather than package globals so that the
// working set of a run can be relocated wholesale.
type Paths struct {
	DatasetDir        string
	WorkloadDir       string
	ConfigPath        string
	InputPath         string
	OptimizedTemplate string
	BaselineTemplate  string
}

// Engine describes the process surface of the query engine: a server binary
// that listens on Addr when started in network mode, a client binary that
// reads a workload script on stdin, and the same server binary in interactive
// mode accepting one query line on stdin.
type Engine struct {
	ServerBin  string
	ClientBin  string
	Addr       string
	ServerArgs []string
	ClientArgs []string
	Paths      Paths
}

func (e *Engine) ServerCmd(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, e.ServerBin, e.ServerArgs...)
}

func (e *Engine) ClientCmd(ctx context.Context, workload io.Reader) *exec.Cmd {
	cmd := exec.CommandContext(ctx, e.ClientBin, e.ClientArgs...)
	cmd.Stdin = workload
	return cmd
}

func (e *Engine) VerifyCmd(ctx context.Context, query string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, e.ServerBin)
	cmd.Stdin = strings.NewReader(query + "\n")
	return cmd
}

// WorkloadFile is the client script for a cell: the program name, with the
// "-opt" marker appended when the optimized variant is selected.
func (e *Engine) WorkloadFile(cell Cell) string {
	name := cell.Program.Name
	if cell.Variant == VariantOptimized {
		name += "-opt"
	}
	return path.Join(e.Paths.WorkloadDir, name)
}
