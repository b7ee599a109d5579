package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/trace"
)

var (
	genIDs        int
	genMinSize    int
	genMaxSize    int
	genReallocPct int
	genSeed       int64
	genOutput     string
)

func init() {
	cmd := newGenCmd()
	cmd.Flags().IntVar(&genIDs, "ids", 100, "Number of distinct block ids")
	cmd.Flags().IntVar(&genMinSize, "min-size", 1, "Smallest request size")
	cmd.Flags().IntVar(&genMaxSize, "max-size", 4096, "Largest request size")
	cmd.Flags().IntVar(&genReallocPct, "realloc-pct", 20, "Percent of operations on live ids that resize, in [0,100)")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (0 uses the current time)")
	cmd.Flags().StringVarP(&genOutput, "output", "o", "", "Write the trace to a file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random trace",
		Long: `The gen command writes a random well-formed .rep trace. Every id is
allocated once, resized zero or more times and freed once.

Example:
  heapctl gen --ids 500 --seed 1 -o random.rep
  heapctl gen --max-size 256 | heapctl run /dev/stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen()
		},
	}
	return cmd
}

func runGen() error {
	if genReallocPct < 0 || genReallocPct > trace.MaxReallocPct {
		return fmt.Errorf("--realloc-pct %d: must be between 0 and %d", genReallocPct, trace.MaxReallocPct)
	}
	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if verbose && !quiet {
		// stdout may be the trace itself
		fmt.Fprintf(os.Stderr, "Seed: %d\n", seed)
	}

	tr := trace.Generate(rand.New(rand.NewSource(seed)), trace.GenOptions{
		IDs:        genIDs,
		MinSize:    genMinSize,
		MaxSize:    genMaxSize,
		ReallocPct: genReallocPct,
	})

	var w io.Writer = os.Stdout
	if genOutput != "" {
		f, err := os.Create(genOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := trace.Write(w, tr); err != nil {
		return err
	}
	if genOutput != "" {
		printInfo("Wrote %d ops over %d ids to %s\n", len(tr.Ops), tr.NumIDs, genOutput)
	}
	return nil
}
