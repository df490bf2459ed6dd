package config

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bethropolis/combiner/internal/output"
	"github.com/bethropolis/combiner/internal/printer"
	"github.com/bethropolis/combiner/internal/tokenizer"
	"github.com/bethropolis/combiner/internal/utils"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir string

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool
	Explain     bool

	// Output settings
	OutputFile string
	BaseName   string
	Format     string
	AssumeYes  bool

	// Processing settings
	MaxFileSizeMB int64
	IncludeBinary bool
	ShowProgress  bool
	Timeout       time.Duration

	// Filtering settings
	Extensions []string
	Exclusions []string
	Nested     bool
	IncludeGit bool

	// Extras
	Tokens    bool
	Model     string
	Clipboard bool

	ConfigFile string
	Version    string
}

// Default values shared by flags and the config file.
const (
	DefaultBaseName = output.DefaultBaseName
	DefaultFormat   = string(printer.FormatMarkdown)
	DefaultModel    = tokenizer.DefaultModel
	ConfigFileName  = ".combiner.yaml"
)

// RunFunc receives the resolved configuration.
type RunFunc func(cmd *cobra.Command, cfg *Config) error

// Resolve finishes a Config after flag parsing: positional arguments
// ([dir] [extensions] [exclusions], space-separated lists as in
// `combiner . "ts tsx" "test dist"`), the optional config file for every
// flag the user did not set, and the colour decision.
func Resolve(cmd *cobra.Command, cfg *Config, args []string) error {
	if len(args) > 0 && args[0] != "" {
		cfg.RootDir = args[0]
	}

	fileConfig, err := LoadFile(LoadOptions{ExplicitFilePath: cfg.ConfigFile})
	if err != nil {
		return err
	}
	fileConfig.apply(cfg, setByUser(cmd.Flags(), args))

	if len(args) > 1 {
		cfg.Extensions = append(cfg.Extensions, args[1])
	}
	if len(args) > 2 {
		cfg.Exclusions = append(cfg.Exclusions, args[2])
	}
	if cfg.RootDir == "" {
		cfg.RootDir = "."
	}

	cfg.Extensions = utils.NormalizeExtensions(utils.SplitList(cfg.Extensions...))
	cfg.Exclusions = utils.DeduplicatePatterns(utils.SplitList(cfg.Exclusions...))

	// Determine if colors should be used
	cfg.UseColors = !cfg.NoColor && isatty.IsTerminal(os.Stderr.Fd())
	return nil
}

// setByUser reports whether a flag was given on the command line. The
// positional lists count as the ext and exclude flags.
func setByUser(flags *pflag.FlagSet, args []string) func(string) bool {
	return func(name string) bool {
		switch {
		case name == extFlag && len(args) > 1, name == excludeFlag && len(args) > 2:
			return true
		}
		return flags.Changed(name)
	}
}
