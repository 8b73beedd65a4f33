package main

import (
	"context"
	"fmt"
)

// Harness runs the benchmark matrix strictly sequentially: the canonical
// config and input paths are singletons, so only one cell may hold them and
// only one server instance is live at a time.
type Harness struct {
	Driver   *Driver
	Reporter *Reporter
	Storage  *Storage
	Results  string
	Create   bool
	Meta     map[string]any
}

// Run executes every cell in matrix order. A failing cell records a failure
// result and the matrix continues; cancellation stops after the current cell.
func (h *Harness) Run(ctx context.Context, cells []Cell) ([]CellResult, error) {
	results := make([]CellResult, 0, len(cells))
	failed := 0
	for _, cell := range cells {
		if ctx.Err() != nil {
			Logger.Infof("harness cancelled with %v of %v cells left", len(cells)-len(results), len(cells))
			break
		}
		Logger.Infof("running cell %v", cell.Name())
		result := h.Driver.RunCell(ctx, cell)
		if result.Err != nil {
			failed++
			Logger.Errorf("cell %v failed: %v", cell.Name(), result.Err)
		}
		h.Reporter.Report(result)
		results = append(results, result)
	}
	h.Reporter.Summary(results)

	if h.Results != "" {
		if err := h.upload(results); err != nil {
			return results, fmt.Errorf("failed to upload results to %v: %w", h.Results, err)
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%v of %v cells failed", failed, len(cells))
	}
	return results, nil
}

func (h *Harness) upload(results []CellResult) error {
	if h.Create {
		if err := h.Storage.CreateDatabase(h.Results); err != nil {
			return fmt.Errorf("unable to create results db: %w", err)
		}
	}
	db, err := h.Storage.ConnectDb(h.Results)
	if err != nil {
		return fmt.Errorf("unable to connect to results db: %w", err)
	}
	defer db.Close()
	if err := h.Storage.InitResultsDb(db, h.Meta); err != nil {
		return fmt.Errorf("unable to initialize results db: %w", err)
	}
	if err := h.Storage.UploadResults(db, results); err != nil {
		return fmt.Errorf("unable to upload measurements: %w", err)
	}
	Logger.Infof("uploaded %v results to %v", len(results), h.Storage.DbLink(h.Results))
	return nil
}
