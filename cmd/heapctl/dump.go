package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	dumpFreeOnly bool
	dumpImage    string
)

func init() {
	cmd := newDumpCmd()
	addArenaFlags(cmd)
	cmd.Flags().BoolVar(&dumpFreeOnly, "free-only", false, "Only list free blocks")
	cmd.Flags().StringVar(&dumpImage, "image", "", "Also save the raw arena bytes to this file")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <trace>",
		Short: "Print the block chain after replaying a trace",
		Long: `The dump command replays a trace and prints every block between the
prologue and the epilogue in address order, followed by a usage summary.

Example:
  heapctl dump short1.rep
  heapctl dump short1.rep --free-only
  heapctl dump short1.rep --json
  heapctl dump short1.rep --image short1.img`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), args)
		},
	}
	return cmd
}

// dumpBlock is the JSON form of one block.
type dumpBlock struct {
	Ptr       uint32 `json:"ptr"`
	Size      int    `json:"size"`
	Allocated bool   `json:"allocated"`
}

func runDump(ctx context.Context, args []string) error {
	_, a, closer, err := replayFile(ctx, args[0], false)
	if err != nil {
		return err
	}
	defer closer()

	if dumpImage != "" {
		if err := os.WriteFile(dumpImage, a.Arena(), 0o644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		printVerbose("Saved %d-byte arena image to %s (base %d)\n", len(a.Arena()), dumpImage, a.Base())
	}

	var blocks []dumpBlock
	a.Walk(func(b alloc.BlockInfo) bool {
		if dumpFreeOnly && b.Allocated {
			return true
		}
		blocks = append(blocks, dumpBlock{Ptr: uint32(b.Ptr), Size: b.Size, Allocated: b.Allocated})
		return true
	})
	u := a.Usage()

	if jsonOut {
		return printJSON(map[string]interface{}{
			"trace":         args[0],
			"base":          a.Base(),
			"arena_bytes":   u.ArenaBytes,
			"blocks":        blocks,
			"free_bytes":    u.FreeBytes,
			"largest_free":  u.LargestFree,
			"fragmentation": u.Fragmentation(),
		})
	}

	printInfo("%-10s %10s  %s\n", "PTR", "SIZE", "STATE")
	for _, b := range blocks {
		state := "free"
		if b.Allocated {
			state = "allocated"
		}
		printInfo("0x%08X %10d  %s\n", b.Ptr, b.Size, state)
	}
	printInfo("\n%d blocks (%d free, %d allocated), arena %d bytes\n",
		u.Blocks, u.FreeBlocks, u.AllocatedBlocks, u.ArenaBytes)
	printInfo("free %d bytes, largest free block %d, fragmentation %.3f\n",
		u.FreeBytes, u.LargestFree, u.Fragmentation())
	return nil
}
