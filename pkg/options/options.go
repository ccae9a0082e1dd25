// Package options holds the parsed command-line values shared across the
// run pipeline. One instance is constructed per run and injected into each
// argument processor; later stages (discovery, execution) read from it.
package options

// CommandLineOptions aggregates values produced by argument processors.
type CommandLineOptions struct {
	// TestAdapterPath is the merged, semicolon-delimited list of adapter
	// directories, mirrored from the run-settings store.
	TestAdapterPath string

	// SettingsFile is the run-settings file supplied on the command line,
	// empty when the run uses an in-memory document.
	SettingsFile string

	// Sources are the test containers to run.
	Sources []string

	// Verbosity is the logging verbosity count from the CLI.
	Verbosity int
}

// New creates an empty options instance
func New() *CommandLineOptions {
	return &CommandLineOptions{}
}
