package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/spiffcs/stalenotify/cmd.version=...".
var (
	version = ""
	commit  = "none"
	date    = "unknown"
)

// buildVersion prefers the linker-provided version and falls back to the
// module version recorded by go install.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func newCmdVersion(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(env.stdout, "stalenotify %s (commit %s, built %s)\n", buildVersion(), commit, date)
		},
	}
}
