package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// runVersion prints the linker-stamped version, falling back to the module
// build info when heapctl was built with plain go install.
func runVersion() error {
	v, c := version, commit
	info, ok := debug.ReadBuildInfo()
	if ok {
		if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		if c == "none" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}

	fmt.Printf("heapctl %s\n", v)
	fmt.Printf("  commit: %s\n", c)
	fmt.Printf("  built: %s\n", date)
	if ok {
		fmt.Printf("  go: %s\n", info.GoVersion)
		for _, dep := range info.Deps {
			if dep.Path == "github.com/joshuapare/heapkit" {
				fmt.Printf("  heapkit: %s\n", dep.Version)
			}
		}
	}
	return nil
}
