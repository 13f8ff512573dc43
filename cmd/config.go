package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spiffcs/stalenotify/config"
)

// configLocation is one of the two places a config file can live.
type configLocation struct {
	name string
	path string
}

func newCmdConfig(env *environment) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage the stalenotify configuration.

Settings are layered: built-in defaults, then the global file, then
.stalenotify.yaml in the working directory. Without a subcommand the
merged result is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(env, format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(
		newCmdConfigShow(env),
		newCmdConfigPath(env),
		newCmdConfigInit(env),
	)
	return cmd
}

func newCmdConfigShow(env *environment) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(env, format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format (yaml, json)")
	return cmd
}

func newCmdConfigPath(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print config file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := env.configPaths()
			fmt.Fprintf(env.stdout, "global  %s (%s)\n", paths.GlobalPath, existence(paths.GlobalExists))
			fmt.Fprintf(env.stdout, "local   %s (%s)\n", paths.LocalPath, existence(paths.LocalExists))
			fmt.Fprintln(env.stdout, "Later files override earlier ones: defaults, global, local.")
			return nil
		},
	}
}

func newCmdConfigInit(env *environment) *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter config file.

--global writes the per-user file, --local writes .stalenotify.yaml in the
working directory. With neither flag you are asked which one to create.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := env.configPaths()

			var loc configLocation
			switch {
			case global:
				loc = configLocation{name: "global", path: paths.GlobalPath}
			case local:
				loc = configLocation{name: "local", path: paths.LocalPath}
			default:
				var err error
				if loc, err = chooseConfigLocation(env.stdin, env.stdout, paths); err != nil {
					return err
				}
			}

			return writeStarterConfig(env.stdout, loc)
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "Create the per-user config file")
	cmd.Flags().BoolVar(&local, "local", false, "Create ./.stalenotify.yaml")
	cmd.MarkFlagsMutuallyExclusive("global", "local")
	return cmd
}

func chooseConfigLocation(in io.Reader, out io.Writer, paths config.ConfigPathInfo) (configLocation, error) {
	fmt.Fprintln(out, "Which config file should be created?")
	fmt.Fprintf(out, "  [1] global  %s\n", paths.GlobalPath)
	fmt.Fprintf(out, "  [2] local   %s\n", paths.LocalPath)
	fmt.Fprint(out, "Choose [1/2]: ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return configLocation{}, fmt.Errorf("failed to read choice: %w", err)
	}
	fmt.Fprintln(out)

	switch strings.TrimSpace(answer) {
	case "1":
		return configLocation{name: "global", path: paths.GlobalPath}, nil
	case "2":
		return configLocation{name: "local", path: paths.LocalPath}, nil
	default:
		return configLocation{}, fmt.Errorf("invalid choice %q (must be 1 or 2)", strings.TrimSpace(answer))
	}
}

func writeStarterConfig(out io.Writer, loc configLocation) error {
	if _, err := os.Stat(loc.path); err == nil {
		return fmt.Errorf("%s config file already exists: %s", loc.name, loc.path)
	}
	if err := config.SaveTo(loc.path, config.MinimalConfig()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s config file: %s\n", loc.name, loc.path)
	return nil
}

func showConfig(env *environment, format string) error {
	cfg, err := env.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch format {
	case "yaml":
		s, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		fmt.Fprint(env.stdout, s)
	case "json":
		enc := json.NewEncoder(env.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	default:
		return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
	}
	return nil
}

func existence(ok bool) string {
	if ok {
		return "exists"
	}
	return "not found"
}
