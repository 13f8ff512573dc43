package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/stalenotify/internal/constants"
	"github.com/spiffcs/stalenotify/internal/model"
)

// Config represents the application configuration
type Config struct {
	// Owner is used for repository entries given without an owner.
	Owner        string   `yaml:"owner,omitempty" json:"owner,omitempty"`
	Repositories []string `yaml:"repositories,omitempty" json:"repositories,omitempty"`
	// Endpoint overrides the GraphQL endpoint, e.g. for GitHub Enterprise.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Output   string `yaml:"output,omitempty" json:"output,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".stalenotify"
	}
	return filepath.Join(configDir, "stalenotify")
}

// ConfigPath returns the path to the global config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".stalenotify.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the XDG config directory, then merges
// any local .stalenotify.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom loads defaults, then globalPath, then localPath. Missing files
// are skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	cfg := DefaultConfig()

	global, err := readFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load global config file: %w", err)
	}
	if global != nil {
		cfg = mergeConfig(cfg, global)
	}

	local, err := readFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config file: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	return cfg, nil
}

func readFile(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges over on top of base.
// Set values in over take precedence; unset values preserve base.
func mergeConfig(base, over *Config) *Config {
	result := *base

	if over.Owner != "" {
		result.Owner = over.Owner
	}
	// Arrays are replaced, not appended
	if len(over.Repositories) > 0 {
		result.Repositories = over.Repositories
	}
	if over.Endpoint != "" {
		result.Endpoint = over.Endpoint
	}
	if over.Output != "" {
		result.Output = over.Output
	}

	return &result
}

// DefaultConfig returns a fully populated config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Owner:        constants.DefaultOwner,
		Repositories: constants.DefaultRepositories(),
		Output:       "text",
	}
}

// Validate checks that the config names at least one repository.
func (c *Config) Validate() error {
	if len(c.Repositories) == 0 {
		return fmt.Errorf("no repositories configured")
	}
	_, err := c.Targets()
	return err
}

// Targets resolves the configured repositories, in order.
func (c *Config) Targets() ([]model.RepositoryTarget, error) {
	targets := make([]model.RepositoryTarget, 0, len(c.Repositories))
	for _, repo := range c.Repositories {
		t, err := model.ParseRepositoryTarget(repo, c.Owner)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# stalenotify configuration file

# Owner used for repositories listed without one
owner: ` + constants.DefaultOwner + `

# Repositories to inspect, in order (name or owner/name)
repositories:
  - ` + constants.DefaultRepositories()[0] + `

# Output format: text or json
output: text

# GraphQL endpoint for GitHub Enterprise (optional)
# endpoint: https://github.example.com/api/graphql
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
