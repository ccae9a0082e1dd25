package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/testrig-dev/testrig/internal/version"
	"github.com/testrig-dev/testrig/pkg/config"
	"github.com/testrig-dev/testrig/pkg/filesystem"
	"github.com/testrig-dev/testrig/pkg/logging"
	"github.com/testrig-dev/testrig/pkg/options"
	"github.com/testrig-dev/testrig/pkg/output"
	"github.com/testrig-dev/testrig/pkg/paths"
	"github.com/testrig-dev/testrig/pkg/processors"
	"github.com/testrig-dev/testrig/pkg/runsettings"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "testrig",
		Short: "A test execution platform",
		Long: `testrig discovers and runs tests from test containers, loading custom
test adapters from configured adapter directories and sharing run
configuration through a run-settings document.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd(&verbosity))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("testrig version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newRunCmd(verbosity *int) *cobra.Command {
	var (
		adapterPaths []string
		settingsFile string
		saveSettings string
		formatFlag   string
	)

	cmd := &cobra.Command{
		Use:   "run [sources...]",
		Short: "Run tests from the given test containers",
		Long: `Run tests from the given test containers. Adapter directories supplied
with --test-adapter-path are validated, merged with any paths already
recorded in the run-settings document, and made available to discovery.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if format == output.FormatAuto {
				format = output.DetectFormat(os.Stdout)
			}
			renderer := output.NewRenderer(format)

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.Load(cwd, nil)
			if err != nil {
				return err
			}

			deps := processors.Deps{
				FS:      filesystem.NewOS(),
				Store:   runsettings.New(),
				Options: options.New(),
			}
			deps.Options.Verbosity = *verbosity

			invocations := buildInvocations(cfg, settingsFile, adapterPaths, args)

			logging.LogCommand("run", os.Args[1:])
			if err := processors.Dispatch(deps, invocations); err != nil {
				return err
			}

			if saveSettings != "" {
				if err := deps.Store.Save(deps.FS, saveSettings); err != nil {
					return err
				}
				log.Info().Str("path", saveSettings).Msg("Wrote effective run-settings")
			}

			log.Info().
				Str("testAdapterPath", deps.Options.TestAdapterPath).
				Strs("sources", deps.Options.Sources).
				Msg("Argument processing complete")

			if summary := renderer.RenderSummary(deps.Options); summary != "" {
				fmt.Fprint(cmd.OutOrStdout(), summary)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&adapterPaths, "test-adapter-path", nil,
		"Directory containing custom test adapters; may be repeated")
	cmd.Flags().StringVar(&settingsFile, "settings", "",
		"Run-settings XML file to use for the run")
	cmd.Flags().StringVar(&saveSettings, "save-settings", "",
		"Write the effective run-settings document to this file")
	cmd.Flags().StringVar(&formatFlag, "output-format", "auto",
		"Output format: auto, term, or text")

	return cmd
}

// buildInvocations assembles the processor invocations for a run. Config
// defaults come before command-line values so flags merge on top of them;
// Dispatch reorders across processors by priority.
func buildInvocations(cfg *config.Config, settingsFile string, adapterPaths, sources []string) []processors.Invocation {
	var invocations []processors.Invocation

	if settingsFile == "" {
		settingsFile = cfg.Run.SettingsFile
	}
	if settingsFile != "" {
		invocations = append(invocations, processors.Invocation{
			Name:     processors.SettingsProcessorName,
			Argument: settingsFile,
		})
	}

	for _, p := range paths.SplitList(cfg.Adapters.DefaultPaths) {
		invocations = append(invocations, processors.Invocation{
			Name:     processors.AdapterPathProcessorName,
			Argument: p,
		})
	}
	for _, p := range adapterPaths {
		invocations = append(invocations, processors.Invocation{
			Name:     processors.AdapterPathProcessorName,
			Argument: p,
		})
	}

	for _, s := range sources {
		invocations = append(invocations, processors.Invocation{
			Name:     processors.SourceProcessorName,
			Argument: s,
		})
	}

	return invocations
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage testrig configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a starter testrig.toml to the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			const name = "testrig.toml"
			if _, err := os.Stat(name); err == nil {
				return fmt.Errorf("%s already exists", name)
			}
			if err := os.WriteFile(name, config.GenerateDefault(), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.Load(cwd, nil)
			if err != nil {
				return err
			}
			data, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	return cmd
}
