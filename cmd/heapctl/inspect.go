package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/verify"
)

var inspectBase int

func init() {
	cmd := newInspectCmd()
	cmd.Flags().IntVar(&inspectBase, "base", 0, "Offset of the arena scaffold within the image")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Validate a saved arena image",
		Long: `The inspect command maps an arena image saved by "dump --image" and runs
the full invariant checker over it without replaying anything.

Example:
  heapctl inspect short1.img
  heapctl inspect short1.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

func runInspect(args []string) error {
	path := args[0]
	printVerbose("Mapping image: %s\n", path)

	err := verify.File(path, inspectBase)
	result := map[string]interface{}{
		"image": path,
		"valid": err == nil,
	}
	var verr *verify.ValidationError
	if errors.As(err, &verr) {
		result["check"] = verr.Type
		result["offset"] = verr.Offset
	}
	if err != nil {
		result["error"] = err.Error()
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
	printInfo("%s: OK\n", path)
	return nil
}
