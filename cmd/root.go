package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	return newRootCmd(defaultEnvironment())
}

func newRootCmd(env *environment) *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "stalenotify",
		Short: "Warn on GitHub issues that have gone stale",
		Long: `Fetches the open issues of each configured repository, finds the ones
that have not been updated in the last 12 hours, and posts a warning
comment on each.

The access token is read from GITHUB_TOKEN. When it is unset you are
prompted for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNotify(cmd, opts, env)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addNotifyFlags(rootCmd, opts)

	rootCmd.AddCommand(
		newCmdConfig(env),
		newCmdVersion(env),
		newCmdRateLimit(env),
	)

	return rootCmd
}

// addNotifyFlags adds the run flags to a command.
func addNotifyFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "Owner for repositories given without one (overrides config)")
	cmd.Flags().StringArrayVarP(&opts.Repos, "repo", "r", nil, "Repository to inspect, name or owner/name (repeatable, overrides config)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (text, json)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report stale issues without commenting")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "Wait for a key press before exiting")
	cmd.Flags().BoolVar(&opts.NoPrompt, "no-prompt", false, "Fail instead of prompting when GITHUB_TOKEN is unset")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
}
