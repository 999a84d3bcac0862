package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of arbor",
		Long:  `Print the version of arbor along with the Go version and module it was built with`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("arbor %s (%s)\n", version, runtime.Version())
			if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
				fmt.Printf("module %s %s\n", bi.Main.Path, bi.Main.Version)
			}
		},
	}
}
