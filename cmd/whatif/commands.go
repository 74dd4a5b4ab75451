package whatif

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/whatif/internal/version"
	"github.com/arthur-debert/whatif/pkg/config"
	"github.com/arthur-debert/whatif/pkg/errors"
	"github.com/arthur-debert/whatif/pkg/logging"
	"github.com/arthur-debert/whatif/pkg/pipeline"
	"github.com/arthur-debert/whatif/pkg/style"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newApplyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "apply <plan.yaml>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.apply")

			plan, err := pipeline.LoadPlan(args[0])
			if err != nil {
				return err
			}
			logger.Info().
				Str("plan", plan.Name).
				Int("resources", len(plan.Resources)).
				Bool("dryRun", opts.cfg.DryRun).
				Msg("Applying plan")

			stack := pipeline.NewStack(opts.cfg, pipeline.StackOptions{})
			results, runErr := stack.Pipeline().Run(cmd.Context(), plan.Actions(stack.Executor()))

			title := MsgReportTitle
			if opts.cfg.DryRun {
				title = MsgReportTitleDryRun
			}
			fmt.Fprint(cmd.OutOrStdout(), style.RenderReport(title, reportLines(results)))
			if opts.cfg.DryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return runErr
		},
	}
}

// reportLines converts action results to report lines
func reportLines(results []pipeline.ActionResult) []style.Line {
	lines := make([]style.Line, 0, len(results))
	for _, r := range results {
		status := style.StatusApplied
		switch {
		case r.Err != nil:
			status = style.StatusFailed
		case r.Simulated:
			status = style.StatusSimulated
		}
		lines = append(lines, style.Line{
			Resource: r.Resource,
			Action:   r.Action,
			Status:   status,
			Duration: r.Duration,
			Err:      r.Err,
		})
	}
	return lines
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateCommented(opts.cfg)
			if err != nil {
				return err
			}
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			path, err := xdg.ConfigFile(config.UserConfigPath)
			if err != nil {
				return errors.Wrap(err, errors.ErrFileAccess, "failed to resolve config path")
			}
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, "config file %s already exists", path).
					WithDetail("path", path)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "WHATIF",
				Section: "1",
				Source:  "whatif " + version.Version,
				Manual:  "whatif manual",
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
