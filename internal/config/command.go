package config

import (
	"github.com/spf13/cobra"
)

const (
	extFlag           = "ext"
	excludeFlag       = "exclude"
	outputFlag        = "output"
	baseNameFlag      = "base-name"
	formatFlag        = "format"
	nestedFlag        = "nested"
	includeGitFlag    = "include-git"
	maxSizeFlag       = "max-size"
	includeBinaryFlag = "include-binary"
	yesFlag           = "yes"
	showSkippedFlag   = "show-skipped"
	explainFlag       = "explain"
	progressFlag      = "progress"
	tokensFlag        = "tokens"
	modelFlag         = "model"
	clipboardFlag     = "clipboard"
	timeoutFlag       = "timeout"
	configFlag        = "config"
	verboseFlag       = "verbose"
	quietFlag         = "quiet"
	logLevelFlag      = "log-level"
	noColorFlag       = "no-color"

	commandUse   = "combiner [dir] [extensions] [exclusions]"
	commandShort = "Combine a project's files into one Markdown document"
	commandLong  = `combiner walks a directory and writes the content of every included file
into a single document (combined_project_files.md by default).

Files are excluded by the root .gitignore (or .ignore), by case-insensitive
exclusion tokens, and by an optional extension allow-list. Excluded
directories are never descended into.`
	commandExample = `  # Every file under the current directory
  combiner

  # TypeScript sources under ./web, skipping anything containing "test" or "dist"
  combiner ./web "ts tsx" "test dist"

  # The same with flags, written as JSON to stdout
  combiner ./web --ext ts,tsx --exclude test,dist --format json --output -`
)

// NewCommand builds the root command. run is called with the resolved configuration.
func NewCommand(version string, run RunFunc) *cobra.Command {
	cfg := &Config{Version: version}

	cmd := &cobra.Command{
		Use:           commandUse,
		Short:         commandShort,
		Long:          commandLong,
		Example:       commandExample,
		Version:       version,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := Resolve(cmd, cfg, args); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&cfg.Extensions, extFlag, nil, "Only include files with these extensions (e.g. 'go,md'); adds to the positional list")
	flags.StringSliceVarP(&cfg.Exclusions, excludeFlag, "e", nil, "Exclude paths containing these tokens (case-insensitive); adds to the positional list")
	flags.StringVarP(&cfg.OutputFile, outputFlag, "o", "", "Write to this file ('-' for stdout) instead of <base-name>.<ext> in the working directory")
	flags.StringVar(&cfg.BaseName, baseNameFlag, DefaultBaseName, "Base name of the output document; paths containing it are never included")
	flags.StringVarP(&cfg.Format, formatFlag, "f", DefaultFormat, "Output format: markdown, text or json")
	flags.BoolVar(&cfg.Nested, nestedFlag, false, "Also apply .gitignore files found in subdirectories")
	flags.BoolVar(&cfg.IncludeGit, includeGitFlag, false, "Include .git directories")
	flags.Int64Var(&cfg.MaxFileSizeMB, maxSizeFlag, 0, "Max file size to include in MB (0 = no limit)")
	flags.BoolVar(&cfg.IncludeBinary, includeBinaryFlag, false, "Include files that look binary")
	flags.BoolVarP(&cfg.AssumeYes, yesFlag, "y", false, "Overwrite an existing output document without asking")
	flags.BoolVar(&cfg.ShowSkipped, showSkippedFlag, false, "Show a list of skipped files/directories and reasons at the end")
	flags.BoolVar(&cfg.Explain, explainFlag, false, "Log the inclusion verdict of every evaluated path")
	flags.BoolVar(&cfg.ShowProgress, progressFlag, false, "Show progress information")
	flags.BoolVar(&cfg.Tokens, tokensFlag, false, "Report the token count of the combined document")
	flags.StringVar(&cfg.Model, modelFlag, DefaultModel, "Tokenizer model used by --tokens")
	flags.BoolVar(&cfg.Clipboard, clipboardFlag, false, "Copy the combined document to the clipboard")
	flags.DurationVar(&cfg.Timeout, timeoutFlag, 0, "Maximum execution time (e.g., '30s', '5m')")
	flags.StringVar(&cfg.ConfigFile, configFlag, "", "Configuration file (default ./"+ConfigFileName+" when present)")
	flags.BoolVarP(&cfg.Verbose, verboseFlag, "v", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	flags.BoolVarP(&cfg.Quiet, quietFlag, "q", false, "Suppress INFO messages (only show WARN, ERROR)")
	flags.StringVar(&cfg.LogLevel, logLevelFlag, "", "Set the logging level (DEBUG, INFO, WARN, ERROR, NONE)")
	flags.BoolVar(&cfg.NoColor, noColorFlag, false, "Disable color output")

	return cmd
}
