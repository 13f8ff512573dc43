package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	gh "github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"

	"github.com/spiffcs/stalenotify/config"
	"github.com/spiffcs/stalenotify/internal/credential"
	"github.com/spiffcs/stalenotify/internal/ghclient"
	"github.com/spiffcs/stalenotify/internal/log"
	"github.com/spiffcs/stalenotify/internal/output"
	"github.com/spiffcs/stalenotify/internal/stale"
)

// githubClient is the part of the GitHub client the commands need.
type githubClient interface {
	stale.IssueFetcher
	stale.Commenter
	AuthenticatedUser(ctx context.Context) (string, error)
	RateLimits(ctx context.Context) (*gh.RateLimits, error)
}

// Ensure ghclient.Client implements githubClient.
var _ githubClient = (*ghclient.Client)(nil)

// environment bundles the process-level collaborators of a command so
// tests can substitute them.
type environment struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	lookupEnv   func(string) (string, bool)
	loadConfig  func() (*config.Config, error)
	configPaths func() config.ConfigPathInfo
	newClient   func(ctx context.Context, token, endpoint string) (githubClient, error)
}

func defaultEnvironment() *environment {
	return &environment{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		lookupEnv:   os.LookupEnv,
		loadConfig:  config.Load,
		configPaths: config.GetConfigPaths,
		newClient: func(ctx context.Context, token, endpoint string) (githubClient, error) {
			return ghclient.NewClient(ctx, token, ghclient.WithGraphQLURL(endpoint))
		},
	}
}

// tokenProvider returns the credential chain for this run.
func (e *environment) tokenProvider(noPrompt bool) credential.Provider {
	chain := credential.Chain{credential.NewEnvProvider(e.lookupEnv)}
	if !noPrompt {
		chain = append(chain, credential.NewPromptProvider(e.stdin, e.stderr))
	}
	return chain
}

func runNotify(cmd *cobra.Command, opts *Options, env *environment) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log.Initialize(opts.Verbosity, env.stderr)

	cfg, err := env.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	targets, err := cfg.Targets()
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	token, err := env.tokenProvider(opts.NoPrompt).Token(ctx)
	if err != nil {
		return err
	}

	client, err := env.newClient(ctx, token, cfg.Endpoint)
	if err != nil {
		return err
	}

	notifier := stale.New(client, client,
		stale.WithReporter(output.NewReporter(format, env.stdout)),
		stale.WithDryRun(opts.DryRun),
	)

	summary, runErr := notifier.Run(ctx, targets)
	if runErr != nil && summary != nil {
		summary.Error = runErr.Error()
		if err := output.WriteAbortedSummary(format, env.stdout, summary); err != nil {
			log.Error("failed to write summary", "error", err)
		}
	}

	if opts.Wait {
		waitForKey(env.stdin, env.stderr)
	}
	if runErr != nil {
		return runErr
	}

	log.Info("run complete",
		"repositories", len(summary.Repositories),
		"stale", summary.TotalStale(),
		"commented", summary.TotalCommented(),
		"duration", summary.FinishedAt.Sub(summary.StartedAt))
	return nil
}

// applyOverrides layers command-line flags over the loaded config.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.Owner != "" {
		cfg.Owner = opts.Owner
	}
	if len(opts.Repos) > 0 {
		cfg.Repositories = opts.Repos
	}
	if opts.Format != "" {
		cfg.Output = opts.Format
	}
}
