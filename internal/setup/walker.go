// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bethropolis/combiner/internal/ignore"
	"github.com/bethropolis/combiner/internal/utils"
	"github.com/bethropolis/combiner/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	RootDir        string
	Extensions     []string
	Exclusions     []string
	Nested         bool
	IncludeGit     bool
	MaxFileSizeMB  int64
	IncludeBinary  bool
	SelfOutputName string
	OutputPath     string
	ShowProgress   bool
	ProgressOut    io.Writer
	Explain        bool
	Context        context.Context
	Logger         utils.Logger
}

// ConfigureWalker sets up the exclusion filter and walker options based on the config
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (*ignore.Filter, []walker.Option, error) {
	log := utils.LoggerOrNoop(cfg.Logger)

	if len(cfg.Exclusions) > 0 {
		infoLog("Excluding paths containing: %s", strings.Join(cfg.Exclusions, ", "))
	}

	if len(cfg.Extensions) > 0 {
		dotted := make([]string, len(cfg.Extensions))
		for i, ext := range cfg.Extensions {
			dotted[i] = "." + ext
		}
		infoLog("Filtering enabled. Only including extensions: %s", strings.Join(dotted, ", "))
	} else {
		infoLog("No extension filtering (including all file types).")
	}

	filter, err := ignore.NewFromConfig(ignore.Config{
		RootDir:   cfg.RootDir,
		Tokens:    cfg.Exclusions,
		Nested:    cfg.Nested,
		IgnoreGit: !cfg.IncludeGit,
		Logger:    log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}
	if cfg.Nested {
		infoLog("Applying nested %s files.", ignore.GitIgnoreFileName)
	}

	walkOptions := []walker.Option{
		walker.WithLogger(log),
		walker.WithExtensions(cfg.Extensions),
		walker.WithSelfOutputName(cfg.SelfOutputName),
	}
	if cfg.OutputPath != "" {
		walkOptions = append(walkOptions, walker.WithExcludedPath(cfg.OutputPath))
	}
	walkOptions = append(walkOptions,
		walker.WithSkipBinary(!cfg.IncludeBinary),
	)

	if cfg.ShowProgress && cfg.ProgressOut != nil {
		log.Debug("Progress display enabled")
		walkOptions = append(walkOptions, walker.WithProgress(progressPrinter(cfg.ProgressOut)))
	}

	if cfg.Explain {
		walkOptions = append(walkOptions, walker.WithVerdicts(func(candidate ignore.Candidate, verdict ignore.Verdict) {
			infoLog("%s: %s", candidate, verdict)
		}))
	}

	// Convert MB to bytes for MaxFileSize if specified
	if cfg.MaxFileSizeMB > 0 {
		walkOptions = append(walkOptions, walker.WithMaxFileSize(cfg.MaxFileSizeMB*1024*1024))
		infoLog("Ignoring files larger than %d MB.", cfg.MaxFileSizeMB)
	}

	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return filter, walkOptions, nil
}

// progressPrinter renders a single status line that is rewritten in place.
func progressPrinter(out io.Writer) walker.ProgressCallback {
	return func(stats walker.ProgressStats) {
		path := stats.CurrentFilePath
		if len(path) > 40 {
			path = "..." + path[len(path)-37:]
		}
		fmt.Fprintf(out, "\rProcessing: %-40s | Files: %d/%d | Dirs: %d",
			path,
			stats.ProcessedFiles,
			stats.TotalFiles,
			stats.TotalDirs)
	}
}
