package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Reporter prints timing and verification lines to stdout for later
// collection; logs go to stderr so the result stream stays clean.
type Reporter struct {
	Out io.Writer
}

func NewReporter() *Reporter {
	return &Reporter{Out: os.Stdout}
}

func (r *Reporter) Report(result CellResult) {
	cell := result.Cell
	if result.Err != nil {
		fmt.Fprintf(r.Out, "%v %v %v failed=%v\n", cell.Program.Name, cell.Dataset, cell.Variant, FailureClass(result.Err))
		return
	}
	fmt.Fprintf(r.Out, "%v %v %v time=%.3fs count=%v\n",
		cell.Program.Name, cell.Dataset, cell.Variant, result.Elapsed.Seconds(), oneline(result.Verification))
}

func (r *Reporter) Summary(results []CellResult) {
	tw := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROGRAM\tDATASET\tVARIANT\tTIME\tRESULT")
	failed := 0
	for _, result := range results {
		cell := result.Cell
		if result.Err != nil {
			failed++
			fmt.Fprintf(tw, "%v\t%v\t%v\t-\t%v\n", cell.Program.Name, cell.Dataset, cell.Variant, FailureClass(result.Err))
			continue
		}
		fmt.Fprintf(tw, "%v\t%v\t%v\t%.3fs\t%v\n",
			cell.Program.Name, cell.Dataset, cell.Variant, result.Elapsed.Seconds(), oneline(result.Verification))
	}
	tw.Flush()
	if failed > 0 {
		fmt.Fprintf(r.Out, "%v of %v cells failed\n", failed, len(results))
	}
}

func oneline(output string) string {
	return strings.Join(strings.Fields(output), " ")
}
