package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Driver executes one benchmark cell at a time: select config, stage input,
// start the engine server, wait until it accepts connections, run the client
// workload under wall-clock timing, verify through the interactive shell,
// terminate the server.
type Driver struct {
	Engine       *Engine
	ReadyTimeout time.Duration
	CellTimeout  time.Duration
}

type CellResult struct {
	Cell         Cell
	Elapsed      time.Duration
	Verification string
	Err          error
}

func VerificationQuery(program ProgramSpec) string {
	return fmt.Sprintf("select count(*) from %v;", program.Name)
}

func (d *Driver) RunCell(ctx context.Context, cell Cell) CellResult {
	result := CellResult{Cell: cell}
	if d.CellTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.CellTimeout)
		defer cancel()
	}

	if err := SelectConfig(d.Engine.Paths, cell.Variant); err != nil {
		result.Err = fmt.Errorf("failed to select config for cell %v: %w", cell.Name(), err)
		return result
	}
	if err := StageInput(d.Engine.Paths, cell.Dataset, cell.Program.Suffix); err != nil {
		result.Err = fmt.Errorf("failed to stage input for cell %v: %w", cell.Name(), err)
		return result
	}

	server := d.Engine.ServerCmd(ctx)
	Logger.Infof("starting server for cell %v: %v", cell.Name(), server.Args)
	if err := server.Start(); err != nil {
		result.Err = fmt.Errorf("failed to start server for cell %v: %w", cell.Name(), err)
		return result
	}
	// the server must not outlive its cell, whatever state the run died in
	defer func() {
		if err := terminate(server); err != nil {
			Logger.Errorf("failed to terminate server for cell %v: %v", cell.Name(), err)
		}
	}()

	if err := d.waitReady(ctx); err != nil {
		result.Err = fmt.Errorf("server for cell %v never became ready: %w", cell.Name(), err)
		return result
	}

	elapsed, err := d.runClient(ctx, cell)
	result.Elapsed = elapsed
	if err != nil {
		result.Err = fmt.Errorf("client failed for cell %v: %w", cell.Name(), err)
		return result
	}

	verification, err := d.verify(ctx, cell)
	if err != nil {
		result.Err = fmt.Errorf("verification failed for cell %v: %w", cell.Name(), err)
		return result
	}
	result.Verification = verification
	return result
}

// waitReady polls the engine's listening address with bounded backoff until
// it accepts a connection or the ready timeout expires.
func (d *Driver) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(d.ReadyTimeout)
	backoff := 10 * time.Millisecond
	for {
		conn, err := net.DialTimeout("tcp", d.Engine.Addr, d.ReadyTimeout)
		if err == nil {
			conn.Close()
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %v not reachable after %v", ErrServerStartTimeout, d.Engine.Addr, d.ReadyTimeout)
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrServerStartTimeout, context.Cause(ctx))
		}
		if backoff < 500*time.Millisecond {
			backoff *= 2
		}
	}
}

func (d *Driver) runClient(ctx context.Context, cell Cell) (time.Duration, error) {
	workloadPath := d.Engine.WorkloadFile(cell)
	workload, err := os.Open(workloadPath)
	if err != nil {
		return 0, fmt.Errorf("%w: workload %v: %v", ErrClientProcessFailed, workloadPath, err)
	}
	defer workload.Close()

	cmd := d.Engine.ClientCmd(ctx, workload)
	Logger.Infof("running client workload %v", workloadPath)
	start := time.Now()
	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, fmt.Errorf("%w: err=%v, out=%v", ErrClientProcessFailed, err, string(output))
	}
	Logger.Infof("client finished workload %v in %v", workloadPath, elapsed)
	return elapsed, nil
}

func (d *Driver) verify(ctx context.Context, cell Cell) (string, error) {
	query := VerificationQuery(cell.Program)
	cmd := d.Engine.VerifyCmd(ctx, query)
	Logger.Infof("verifying cell %v with query %v", cell.Name(), query)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: err=%v", ErrVerifierUnreachable, err)
	}
	return strings.TrimSpace(string(output)), nil
}

func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	waitErr := cmd.Wait()
	var exitErr *exec.ExitError
	if waitErr == nil || errors.As(waitErr, &exitErr) {
		return nil
	}
	return waitErr
}
