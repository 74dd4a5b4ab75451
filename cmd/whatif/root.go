package whatif

import (
	"fmt"

	"github.com/arthur-debert/whatif/internal/version"
	"github.com/arthur-debert/whatif/pkg/config"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags and the configuration they load
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	logFile    string

	cfg *config.Config
}

// overrides returns the config overrides for flags set on cmd
func (o *globalOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	values := map[string]interface{}{}
	if cmd.Flags().Changed("dry-run") {
		values["dry_run"] = o.dryRun
	}
	if o.verbosity > 0 {
		values["logging.verbosity"] = o.verbosity
	}
	if o.logFile != "" {
		values["logging.file"] = o.logFile
	}
	return values
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "whatif",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: opts.configFile,
				Overrides:  opts.overrides(cmd),
			})
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logging.SetupLoggerWithFile(cfg.Logging.Verbosity, cfg.Logging.File)
			log.Debug().Str("command", cmd.Name()).Bool("dryRun", cfg.DryRun).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", MsgFlagLogFile)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}
