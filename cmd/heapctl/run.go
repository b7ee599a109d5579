package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/trace"
)

var runVerify bool

func init() {
	cmd := newRunCmd()
	addArenaFlags(cmd)
	cmd.Flags().BoolVar(&runVerify, "verify", false, "Check every heap invariant after each operation")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <trace>...",
		Short: "Replay traces and report utilization and throughput",
		Long: `The run command replays one or more .rep traces, each in a fresh arena,
and prints a table of space utilization (peak live payload over arena size)
and throughput. With more than one trace a weighted summary row is added.

Example:
  heapctl run traces/*.rep
  heapctl run short1.rep --chunk-size 256 --verify
  heapctl run binary.rep --mapped --limit 67108864 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args)
		},
	}
	return cmd
}

// runResult is the JSON form of one replay.
type runResult struct {
	Trace        string  `json:"trace"`
	Ops          int     `json:"ops"`
	PeakPayload  int     `json:"peak_payload"`
	ArenaBytes   int     `json:"arena_bytes"`
	Utilization  float64 `json:"utilization"`
	ElapsedNanos int64   `json:"elapsed_ns"`
	GrowCalls    int     `json:"grow_calls"`
	Splits       int     `json:"splits"`
	ReallocMoved int     `json:"realloc_moved"`
	FreeBlocks   int     `json:"free_blocks"`
	LargestFree  int     `json:"largest_free"`
}

func runRun(ctx context.Context, args []string) error {
	results := make([]*trace.Result, 0, len(args))
	for _, path := range args {
		res, _, closer, err := replayFile(ctx, path, runVerify)
		if err != nil {
			return err
		}
		if err := closer(); err != nil {
			return fmt.Errorf("failed to release arena: %w", err)
		}
		printVerbose("%s: %d ops in %s\n", res.Name, res.Ops, res.Elapsed.Round(time.Microsecond))
		results = append(results, res)
	}

	if jsonOut {
		out := make([]runResult, 0, len(results))
		for _, r := range results {
			out = append(out, runResult{
				Trace:        r.Name,
				Ops:          r.Ops,
				PeakPayload:  r.PeakPayload,
				ArenaBytes:   r.ArenaBytes,
				Utilization:  r.Utilization(),
				ElapsedNanos: r.Elapsed.Nanoseconds(),
				GrowCalls:    r.Stats.GrowCalls,
				Splits:       r.Stats.Splits,
				ReallocMoved: r.Stats.ReallocMoved,
				FreeBlocks:   r.Usage.FreeBlocks,
				LargestFree:  r.Usage.LargestFree,
			})
		}
		return printJSON(out)
	}

	if quiet {
		return nil
	}
	return trace.WriteReport(os.Stdout, results)
}
