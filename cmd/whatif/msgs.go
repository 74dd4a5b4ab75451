package whatif

// Short messages (one-liners)
const (
	MsgRootShort = "Converge resource plans, or preview what they would change"
	MsgRootLong  = `whatif applies plans of resource actions to the system. Every file, directory
and command primitive an action uses goes through an intercepted target, so with
--dry-run the actions run as usual but each side effect is reported instead of
performed. Reads still see the real system.`

	MsgApplyShort   = "Apply a plan file"
	MsgApplyLong    = "Apply runs every resource action of the plan in order and stops at the first failure."
	MsgApplyExample = `  whatif apply site.yaml            # Converge the system
  whatif apply site.yaml --dry-run  # Report what would change`

	MsgGenConfigShort  = "Print a commented default configuration"
	MsgGenConfigLong   = "Print the effective configuration as TOML with every value commented out."
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man pages"
	MsgCompletionShort = "Generate shell completion script"

	MsgReportTitle       = "whatif apply"
	MsgReportTitleDryRun = "whatif apply (dry run)"
	MsgDryRunNotice      = "DRY RUN MODE - No changes were made"

	MsgVersionFormat = "whatif version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Report changes without executing them"
	MsgFlagConfig  = "Config file (default is $XDG_CONFIG_HOME/whatif/config.toml)"
	MsgFlagLogFile = "Log file (default is $XDG_STATE_HOME/whatif/whatif.log)"
	MsgFlagManDir  = "Directory to write man pages to"
	MsgFlagWrite   = "Write the configuration to the user config file instead of stdout"
)

// MsgUsageTemplate is the cobra usage template
const MsgUsageTemplate = `{{boldUpper "usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "global flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`
