package walker

import (
	"context"
	"path/filepath"

	"github.com/bethropolis/combiner/internal/ignore"
	"github.com/bethropolis/combiner/internal/utils"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger         utils.Logger
	MaxFileSize    int64
	ExtensionMap   map[string]struct{}
	SelfOutputName string
	ExcludedPaths  map[string]struct{}
	SkipBinary     bool
	Context        context.Context
	ProgressFn     ProgressCallback
	VerdictFn      VerdictCallback
}

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(stats ProgressStats)

// VerdictCallback receives the verdict for every evaluated path below the root.
type VerdictCallback func(candidate ignore.Candidate, verdict ignore.Verdict)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	TotalFiles      int64  // Total files seen
	ProcessedFiles  int64  // Files that passed all filters
	SkippedFiles    int64  // Files that were skipped for any reason
	TotalDirs       int64  // Total directories seen
	SkippedDirs     int64  // Directories that were pruned
	CurrentFilePath string // Path of the current file being processed (relative)
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:  utils.NoopLogger{},
		Context: context.Background(),
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		opts.Logger = utils.LoggerOrNoop(logger)
	}
}

// WithMaxFileSize sets the maximum file size to read in bytes
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *WalkOptions) {
		opts.MaxFileSize = maxBytes
	}
}

// WithExtensions sets the file extensions to include. Extensions are
// normalized to lower case without a leading dot. An empty list allows all.
func WithExtensions(extensions []string) Option {
	return func(opts *WalkOptions) {
		normalized := utils.NormalizeExtensions(extensions)
		if len(normalized) == 0 {
			opts.ExtensionMap = nil
			return
		}
		extMap := make(map[string]struct{}, len(normalized))
		for _, ext := range normalized {
			extMap[ext] = struct{}{}
		}
		opts.ExtensionMap = extMap
	}
}

// WithSelfOutputName excludes every file whose relative path contains name,
// so a previous run's output is never read back in.
func WithSelfOutputName(name string) Option {
	return func(opts *WalkOptions) {
		opts.SelfOutputName = name
	}
}

// WithExcludedPath excludes the file at path, such as the document being
// written, as previous output. Relative paths resolve against the working
// directory.
func WithExcludedPath(path string) Option {
	return func(opts *WalkOptions) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if opts.ExcludedPaths == nil {
			opts.ExcludedPaths = make(map[string]struct{})
		}
		opts.ExcludedPaths[absPath] = struct{}{}
	}
}

// WithSkipBinary skips files whose content looks binary.
func WithSkipBinary(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.SkipBinary = enabled
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}

// WithVerdicts adds a callback receiving every path's inclusion verdict.
func WithVerdicts(fn VerdictCallback) Option {
	return func(o *WalkOptions) {
		o.VerdictFn = fn
	}
}
