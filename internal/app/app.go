// Package app runs one combine: resolve the destination, walk the tree,
// write the document and report.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bethropolis/combiner/internal/clipboard"
	"github.com/bethropolis/combiner/internal/config"
	"github.com/bethropolis/combiner/internal/logger"
	"github.com/bethropolis/combiner/internal/output"
	"github.com/bethropolis/combiner/internal/printer"
	"github.com/bethropolis/combiner/internal/setup"
	"github.com/bethropolis/combiner/internal/summary"
	"github.com/bethropolis/combiner/internal/tokenizer"
	"github.com/bethropolis/combiner/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	stderr io.Writer

	// Prompter decides about an existing output document.
	Prompter output.Prompter
	// Clipboard receives the document when --clipboard is set.
	Clipboard clipboard.Copier
	// NewCounter builds the token counter for --tokens.
	NewCounter func(model string) (tokenizer.Counter, error)
}

// New creates a new App instance logging to stderr
func New(cfg *config.Config, stderr io.Writer) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(stderr, cfg.Verbose, cfg.UseColors)

	// Apply log level if specified (overrides verbose/quiet flags)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:        cfg,
		log:        log,
		stderr:     stderr,
		Prompter:   output.NewPrompter(cfg.AssumeYes),
		Clipboard:  clipboard.NewService(),
		NewCounter: tokenizer.NewCounter,
	}
}

// Run executes the main application logic. Only invalid input, an
// unwritable destination, cancellation or timeout return an error; per-file
// problems are logged and skipped.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()
	defer func() { _ = a.log.Sync() }()

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	format, err := printer.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	absRootDir, err := validateRoot(a.cfg.RootDir)
	if err != nil {
		return err
	}

	a.log.Debug("Directory: %s", absRootDir)
	a.log.Debug("Format: %s, nested ignore files: %v, include .git: %v", format, a.cfg.Nested, a.cfg.IncludeGit)

	destination, err := a.resolveDestination(format)
	if err != nil {
		return err
	}

	var progressOut io.Writer
	if a.cfg.ShowProgress && !a.cfg.Quiet {
		progressOut = a.stderr
	}
	filter, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:        absRootDir,
		Extensions:     a.cfg.Extensions,
		Exclusions:     a.cfg.Exclusions,
		Nested:         a.cfg.Nested,
		IncludeGit:     a.cfg.IncludeGit,
		MaxFileSizeMB:  a.cfg.MaxFileSizeMB,
		IncludeBinary:  a.cfg.IncludeBinary,
		SelfOutputName: a.selfOutputName(),
		OutputPath:     outputPath(destination),
		ShowProgress:   progressOut != nil,
		ProgressOut:    progressOut,
		Explain:        a.cfg.Explain,
		Context:        ctx,
		Logger:         a.log,
	}, a.log.Info)
	if err != nil {
		return err
	}

	doc, err := output.Create(destination)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	// keep a copy of the document for token counting and the clipboard
	var captured bytes.Buffer
	var sink io.Writer = doc
	if a.cfg.Tokens || a.cfg.Clipboard {
		sink = io.MultiWriter(doc, &captured)
	}

	p := printer.New().
		WithOutput(sink).
		WithFormat(format).
		WithColors(format == printer.FormatText && doc.IsStdout() && a.cfg.UseColors && isatty.IsTerminal(os.Stdout.Fd()))

	printFunc := func(relativePath string, content []byte, err error) error {
		if err != nil {
			a.log.Warn("Skipping file '%s' due to error: %v", relativePath, err)
			return nil
		}
		a.log.Debug("Adding: %s (%d bytes)", relativePath, len(content))
		return p.PrintFile(relativePath, content)
	}

	a.log.Info("Scanning directory: %s", absRootDir)
	skippedItems, walkErr := walker.Walk(absRootDir, filter, printFunc, walkOptions...)
	if progressOut != nil {
		fmt.Fprintln(progressOut)
	}
	if walkErr != nil {
		switch {
		case errors.Is(walkErr, context.DeadlineExceeded):
			return fmt.Errorf("timeout of %v reached: %w", a.cfg.Timeout, walkErr)
		case errors.Is(walkErr, context.Canceled):
			return fmt.Errorf("run cancelled: %w", walkErr)
		default:
			return fmt.Errorf("critical error during directory walk: %w", walkErr)
		}
	}

	if err := p.Finalize(); err != nil {
		return err
	}
	if err := doc.Close(); err != nil {
		return err
	}

	summary.DisplayResults(a.log, p.GetCount(), doc.Name(), time.Since(startTime), a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, a.stderr, a.cfg.Quiet)
	}

	if a.cfg.Tokens {
		a.reportTokens(captured.Bytes())
	}

	if a.cfg.Clipboard {
		if err := a.Clipboard.Copy(captured.String()); err != nil {
			a.log.Warn("Could not copy the document to the clipboard: %v", err)
		} else {
			a.log.Info("Copied the combined document to the clipboard.")
		}
	}

	return nil
}

// resolveDestination returns the explicit --output path, or the default
// document name in the working directory after collision handling.
func (a *App) resolveDestination(format printer.Format) (string, error) {
	if a.cfg.OutputFile != "" {
		return a.cfg.OutputFile, nil
	}
	return output.Resolver{
		Dir:      ".",
		BaseName: a.selfOutputName(),
		Ext:      format.Extension(),
		Prompter: a.Prompter,
		Logger:   a.log,
	}.Resolve()
}

// outputPath is the file the walker must not read back, or "" for stdout.
func outputPath(destination string) string {
	if destination == output.StdoutName {
		return ""
	}
	return destination
}

func (a *App) selfOutputName() string {
	if a.cfg.BaseName != "" {
		return a.cfg.BaseName
	}
	return output.DefaultBaseName
}

// reportTokens counts and logs tokens. Failures are warnings.
func (a *App) reportTokens(document []byte) {
	counter, err := a.NewCounter(a.cfg.Model)
	if err != nil {
		a.log.Warn("Token counting unavailable: %v", err)
		return
	}
	result, err := tokenizer.Count(counter, document)
	if err != nil {
		a.log.Warn("Token counting failed: %v", err)
		return
	}
	summary.DisplayTokens(a.log, result)
}

// validateRoot resolves rootDir and checks that it is a readable directory.
func validateRoot(rootDir string) (string, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("invalid root directory path '%s': %w", rootDir, err)
	}

	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("root directory '%s' not found: %w", absRootDir, err)
		}
		return "", fmt.Errorf("could not access root directory '%s': %w", absRootDir, err)
	}
	if !dirInfo.IsDir() {
		return "", fmt.Errorf("specified path '%s' is not a directory", absRootDir)
	}
	return absRootDir, nil
}
