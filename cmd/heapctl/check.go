package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/verify"
)

func init() {
	cmd := newCheckCmd()
	addArenaFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <trace>",
		Short: "Replay a trace verifying every heap invariant",
		Long: `The check command replays a trace and runs the full invariant checker
after every operation: block sizes, coalescing, free-block boundary tags, the
partition of the arena and the sentinels. Payload fill patterns are checked
on every resize and free. The first violation is reported with the
operation that caused it.

Example:
  heapctl check short1.rep
  heapctl check short1.rep --chunk-size 64 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args)
		},
	}
	return cmd
}

func runCheck(ctx context.Context, args []string) error {
	path := args[0]

	res, a, closer, err := replayFile(ctx, path, true)
	result := map[string]interface{}{
		"trace": path,
		"valid": err == nil,
	}
	if err != nil {
		result["error"] = err.Error()
		var verr *verify.ValidationError
		if errors.As(err, &verr) {
			result["check"] = verr.Type
			result["offset"] = verr.Offset
		}
	} else {
		defer closer()
		result["ops"] = res.Ops
		result["probe"] = a.Check()
	}

	if jsonOut {
		if jerr := printJSON(result); jerr != nil {
			return jerr
		}
		return err
	}

	if err != nil {
		printError("%s: %v\n", path, err)
		return err
	}
	printInfo("%s: OK (%d ops, arena %d bytes)\n", path, res.Ops, res.ArenaBytes)
	return nil
}
