package cmd

// Options holds the command-line options for a notify run.
type Options struct {
	Owner     string
	Repos     []string
	Format    string
	Verbosity int
	DryRun    bool
	Wait      bool
	NoPrompt  bool
}
