package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/sbrk"
	"github.com/joshuapare/heapkit/heap/trace"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Arena flags shared by run, check and dump
	chunkSize int
	limit     int
	mapped    bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Replay allocation traces against the heapkit allocator",
	Long: `heapctl drives the heapkit boundary-tag allocator with malloc-lab style
.rep traces. It reports space utilization and throughput, verifies heap
invariants after every operation, dumps the block chain, and generates
random traces.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addArenaFlags registers the flags that shape the arena a trace runs in.
func addArenaFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "Minimum bytes to grow the arena by")
	cmd.Flags().IntVar(&limit, "limit", sbrk.DefaultLimit, "Maximum arena size in bytes")
	cmd.Flags().BoolVar(&mapped, "mapped", false, "Back the arena with reserved virtual memory instead of a Go slice")
}

// newArena builds an initialized allocator from the arena flags. The
// returned closer releases a mapped arena.
func newArena(paranoid bool) (*alloc.Allocator, func() error, error) {
	var g sbrk.Grower
	closer := func() error { return nil }
	if mapped {
		m, err := sbrk.NewMapped(limit)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to map arena: %w", err)
		}
		g, closer = m, m.Close
	} else {
		g = sbrk.NewMemory(limit)
	}

	a := alloc.New(g, &alloc.Config{
		ChunkSize: chunkSize,
		Logger:    logger(),
		Paranoid:  paranoid,
	})
	if err := a.Init(); err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to initialize heap: %w", err)
	}
	return a, closer, nil
}

// replayFile parses and replays one trace in a fresh arena, leaving the
// allocator for inspection. The caller must call the returned closer.
func replayFile(ctx context.Context, path string, verifyEach bool) (*trace.Result, *alloc.Allocator, func() error, error) {
	printVerbose("Parsing trace: %s\n", path)
	tr, err := trace.ParseFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse trace: %w", err)
	}

	a, closer, err := newArena(false)
	if err != nil {
		return nil, nil, nil, err
	}

	printVerbose("Replaying %d ops over %d ids\n", len(tr.Ops), tr.NumIDs)
	res, err := trace.ReplayOn(ctx, a, tr, trace.Options{
		Verify: verifyEach,
		Logger: logger(),
	})
	if err != nil {
		closer()
		return nil, nil, nil, err
	}
	return res, a, closer, nil
}

// logger returns a debug logger on stderr in verbose mode, nil otherwise.
func logger() *slog.Logger {
	if !verbose || quiet {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
