package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/combiner/internal/ignore"
	"github.com/bethropolis/combiner/internal/utils"
)

// Walk traverses the directory tree starting from rootDir in lexical
// depth-first order and calls walkFn for every included file. Excluded
// directories are pruned. It returns the skipped items and any critical
// error: cancellation, an unreadable root, or an error returned by walkFn.
func Walk(rootDir string, filter *ignore.Filter, walkFn WalkFunc, opts ...Option) ([]SkippedItem, error) {
	options := buildOptions(opts)
	tracker := NewSkippedTracker(100)

	err := walkTree(rootDir, filter, options, tracker, func(path, relativePath string) error {
		return processFile(path, relativePath, options, walkFn, tracker)
	})
	return tracker.Items(), err
}

// Collect returns the ordered list of included files without reading them.
func Collect(rootDir string, filter *ignore.Filter, opts ...Option) (WalkResult, []SkippedItem, error) {
	options := buildOptions(opts)
	tracker := NewSkippedTracker(100)

	result := WalkResult{}
	err := walkTree(rootDir, filter, options, tracker, func(_, relativePath string) error {
		result = append(result, relativePath)
		return nil
	})
	return result, tracker.Items(), err
}

// Paths lazily yields included file paths in traversal order. Stopping the
// iteration stops the traversal. Critical errors end the sequence and are
// logged through the configured logger.
func Paths(rootDir string, filter *ignore.Filter, opts ...Option) iter.Seq[string] {
	return func(yield func(string) bool) {
		options := buildOptions(opts)
		tracker := NewSkippedTracker(16)

		err := walkTree(rootDir, filter, options, tracker, func(_, relativePath string) error {
			if !yield(relativePath) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			options.Logger.Error("walker.Paths: %v", err)
		}
	}
}

func buildOptions(opts []Option) WalkOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// walkTree applies every filter to every entry and calls visit for the
// files that survive, in lexical order.
func walkTree(rootDir string, filter *ignore.Filter, options WalkOptions, tracker *SkippedTracker, visit func(path, relativePath string) error) error {
	startTime := time.Now()

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		tracker.Track(rootDir, ReasonSkippedPathError, true)
		return fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}

	var stats ProgressStats
	report := func(current string) {
		if options.ProgressFn != nil {
			stats.CurrentFilePath = current
			options.ProgressFn(stats)
		}
	}

	options.Logger.Debug("walker.Walk started. Root: %s", absRootDir)

	walkErr := filepath.WalkDir(absRootDir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := options.Context.Err(); ctxErr != nil {
			return ctxErr
		}

		isDir := d != nil && d.IsDir()

		if path == absRootDir {
			if err != nil {
				return fmt.Errorf("walker: cannot read root directory '%s': %w", rootDir, err)
			}
			return nil
		}

		relativePath, relErr := filepath.Rel(absRootDir, path)
		if relErr != nil {
			options.Logger.Error("Walker Error: Path calculation failed for %q: %v", path, relErr)
			tracker.Track(path, ReasonSkippedPathError, isDir)
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if isDir {
			// an unreadable directory is reported a second time with its error
			if err == nil {
				stats.TotalDirs++
			}
		} else {
			stats.TotalFiles++
		}

		if err != nil {
			reason := ReasonSkippedWalkError
			if errors.Is(err, fs.ErrPermission) {
				reason = ReasonSkippedPermError
			}
			options.Logger.Error("Walker Error: Walk error for %q: %v", relativePath, err)
			tracker.Track(relativePath, reason, isDir)
			if isDir {
				stats.SkippedDirs++
				return filepath.SkipDir
			}
			stats.SkippedFiles++
			return nil
		}

		candidate := ignore.Candidate{Path: relativePath, IsDir: isDir}
		verdict := filter.Explain(candidate)
		if verdict.Included && !isDir {
			verdict = fileVerdict(candidate, path, options, verdict)
		}
		if options.VerdictFn != nil {
			options.VerdictFn(candidate, verdict)
		}

		if !verdict.Included {
			options.Logger.Debug("Walker: Skipping %q: %s", candidate, verdict)
			tracker.TrackVerdict(relativePath, verdict, isDir)
			if isDir {
				stats.SkippedDirs++
				return filepath.SkipDir
			}
			stats.SkippedFiles++
			return nil
		}

		if isDir {
			options.Logger.Debug("Walker: Descending into directory %q", relativePath)
			return nil
		}

		if !d.Type().IsRegular() {
			options.Logger.Debug("Walker: Skipping %q: not a regular file", relativePath)
			tracker.Track(relativePath, ReasonSkippedNotRegular, false)
			stats.SkippedFiles++
			return nil
		}

		stats.ProcessedFiles++
		report(relativePath)
		return visit(path, relativePath)
	})

	options.Logger.Debug("Walker: Total walk and processing time: %s", time.Since(startTime))
	return walkErr
}

// fileVerdict applies the extension and previous-output filters to a file
// the ignore filter kept.
func fileVerdict(candidate ignore.Candidate, path string, options WalkOptions, verdict ignore.Verdict) ignore.Verdict {
	name := filepath.Base(path)
	if len(options.ExtensionMap) > 0 {
		if _, ok := options.ExtensionMap[utils.Extension(name)]; !ok {
			return ignore.Verdict{Reason: ignore.ExtensionMismatch, Pattern: utils.Extension(name)}
		}
	}
	if options.SelfOutputName != "" && strings.Contains(candidate.Path, options.SelfOutputName) {
		return ignore.Verdict{Reason: ignore.SelfOutput, Pattern: options.SelfOutputName}
	}
	if _, ok := options.ExcludedPaths[path]; ok {
		return ignore.Verdict{Reason: ignore.SelfOutput, Pattern: candidate.Path}
	}
	return verdict
}

// isNotExist reports whether a read failed because the file vanished.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
