package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// LoadOptions controls how the configuration file is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// FileConfiguration mirrors the command-line flags in .combiner.yaml.
// Pointer fields distinguish "unset" from the zero value.
type FileConfiguration struct {
	Extensions    []string           `mapstructure:"extensions"`
	Exclude       []string           `mapstructure:"exclude"`
	Output        string             `mapstructure:"output"`
	BaseName      string             `mapstructure:"base_name"`
	Format        string             `mapstructure:"format"`
	Nested        *bool              `mapstructure:"nested"`
	IncludeGit    *bool              `mapstructure:"include_git"`
	MaxSizeMB     *int64             `mapstructure:"max_size"`
	IncludeBinary *bool              `mapstructure:"include_binary"`
	ShowSkipped   *bool              `mapstructure:"show_skipped"`
	AssumeYes     *bool              `mapstructure:"yes"`
	Clipboard     *bool              `mapstructure:"clipboard"`
	Timeout       string             `mapstructure:"timeout"`
	LogLevel      string             `mapstructure:"log_level"`
	Tokens        TokenConfiguration `mapstructure:"tokens"`

	timeout time.Duration
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadFile reads the explicit configuration file, or .combiner.yaml in the
// working directory when present. A missing default file is not an error;
// a missing explicit file is.
func LoadFile(options LoadOptions) (FileConfiguration, error) {
	path := options.ExplicitFilePath
	explicit := path != ""
	if !explicit {
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, err := os.Getwd()
			if err != nil {
				return FileConfiguration{}, fmt.Errorf("config: determine working directory: %w", err)
			}
			workingDirectory = currentDirectory
		}
		path = filepath.Join(workingDirectory, ConfigFileName)
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !explicit {
			return FileConfiguration{}, nil
		}
		return FileConfiguration{}, fmt.Errorf("config: stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return FileConfiguration{}, fmt.Errorf("config: configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if err := reader.ReadInConfig(); err != nil {
		return FileConfiguration{}, fmt.Errorf("config: read configuration from %s: %w", path, err)
	}

	var fileConfig FileConfiguration
	if err := reader.Unmarshal(&fileConfig); err != nil {
		return FileConfiguration{}, fmt.Errorf("config: decode configuration from %s: %w", path, err)
	}
	if fileConfig.Timeout != "" {
		timeout, err := time.ParseDuration(fileConfig.Timeout)
		if err != nil {
			return FileConfiguration{}, fmt.Errorf("config: invalid timeout %q in %s: %w", fileConfig.Timeout, path, err)
		}
		fileConfig.timeout = timeout
	}
	return fileConfig, nil
}

// apply copies every value set in the file onto cfg unless the matching
// flag was given on the command line.
func (fileConfig FileConfiguration) apply(cfg *Config, changed func(flag string) bool) {
	use := func(flag string, set bool) bool {
		return set && !changed(flag)
	}

	if use(extFlag, len(fileConfig.Extensions) > 0) {
		cfg.Extensions = append([]string(nil), fileConfig.Extensions...)
	}
	if use(excludeFlag, len(fileConfig.Exclude) > 0) {
		cfg.Exclusions = append([]string(nil), fileConfig.Exclude...)
	}
	if use(outputFlag, fileConfig.Output != "") {
		cfg.OutputFile = fileConfig.Output
	}
	if use(baseNameFlag, fileConfig.BaseName != "") {
		cfg.BaseName = fileConfig.BaseName
	}
	if use(formatFlag, fileConfig.Format != "") {
		cfg.Format = fileConfig.Format
	}
	if use(nestedFlag, fileConfig.Nested != nil) {
		cfg.Nested = *fileConfig.Nested
	}
	if use(includeGitFlag, fileConfig.IncludeGit != nil) {
		cfg.IncludeGit = *fileConfig.IncludeGit
	}
	if use(maxSizeFlag, fileConfig.MaxSizeMB != nil) {
		cfg.MaxFileSizeMB = *fileConfig.MaxSizeMB
	}
	if use(includeBinaryFlag, fileConfig.IncludeBinary != nil) {
		cfg.IncludeBinary = *fileConfig.IncludeBinary
	}
	if use(showSkippedFlag, fileConfig.ShowSkipped != nil) {
		cfg.ShowSkipped = *fileConfig.ShowSkipped
	}
	if use(yesFlag, fileConfig.AssumeYes != nil) {
		cfg.AssumeYes = *fileConfig.AssumeYes
	}
	if use(clipboardFlag, fileConfig.Clipboard != nil) {
		cfg.Clipboard = *fileConfig.Clipboard
	}
	if use(timeoutFlag, fileConfig.timeout > 0) {
		cfg.Timeout = fileConfig.timeout
	}
	if use(logLevelFlag, fileConfig.LogLevel != "") {
		cfg.LogLevel = fileConfig.LogLevel
	}
	if use(tokensFlag, fileConfig.Tokens.Enabled != nil) {
		cfg.Tokens = *fileConfig.Tokens.Enabled
	}
	if use(modelFlag, fileConfig.Tokens.Model != "") {
		cfg.Model = fileConfig.Tokens.Model
	}
}
