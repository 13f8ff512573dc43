package cmd

import (
	"fmt"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"
)

func newCmdRateLimit(env *environment) *cobra.Command {
	var noPrompt bool

	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Check GitHub API rate limit status",
		Long:  `Display current GitHub API rate limit status including remaining quota and reset time.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := env.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			token, err := env.tokenProvider(noPrompt).Token(ctx)
			if err != nil {
				return err
			}

			client, err := env.newClient(ctx, token, cfg.Endpoint)
			if err != nil {
				return err
			}

			login, err := client.AuthenticatedUser(ctx)
			if err != nil {
				return err
			}

			limits, err := client.RateLimits(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(env.stdout, "Authenticated as %s\n\n", login)
			fmt.Fprintln(env.stdout, "GitHub API Rate Limits:")
			fmt.Fprintln(env.stdout)
			writeRate(env, "Core API:", limits.Core)
			writeRate(env, "GraphQL: ", limits.GraphQL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Fail instead of prompting when GITHUB_TOKEN is unset")
	return cmd
}

func writeRate(env *environment, label string, rate *gh.Rate) {
	if rate == nil {
		return
	}
	resetIn := time.Until(rate.Reset.Time).Round(time.Second)
	if resetIn < 0 {
		resetIn = 0
	}
	fmt.Fprintf(env.stdout, "%s %d/%d remaining (resets in %s)\n",
		label, rate.Remaining, rate.Limit, resetIn)
}
