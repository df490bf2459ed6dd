package walker

import (
	"fmt"
	"os"

	"github.com/bethropolis/combiner/internal/utils"
)

// processFile reads a file and calls walkFn with its content. Read failures
// are tracked and handed to walkFn; only an error returned by walkFn is
// propagated.
func processFile(path, relativePath string, options WalkOptions, walkFn WalkFunc, tracker *SkippedTracker) error {
	options.Logger.Debug("processFile: Reading [%s]", relativePath)

	// Only perform file stats if we have a size limit configured
	if options.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			options.Logger.Error("processFile Error [%s]: Failed to get file info: %v", relativePath, err)
			tracker.Track(relativePath, ReasonSkippedInfoError, false)
			return walkFn(relativePath, nil, fmt.Errorf("failed to get file info: %w", err))
		}

		if info.Size() > options.MaxFileSize {
			options.Logger.Debug("processFile Skipping [%s]: Exceeds size limit (%d > %d bytes)",
				relativePath, info.Size(), options.MaxFileSize)
			tracker.Track(relativePath, ReasonSkippedSizeLimit, false)
			return nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			options.Logger.Warn("processFile [%s]: File disappeared before it could be read", relativePath)
		} else {
			options.Logger.Error("processFile Error [%s]: Failed to read file: %v", relativePath, err)
		}
		tracker.Track(relativePath, ReasonSkippedReadError, false)
		return walkFn(relativePath, nil, fmt.Errorf("failed to read file: %w", err))
	}

	if options.SkipBinary && utils.IsBinary(content) {
		options.Logger.Debug("processFile Skipping [%s]: Binary content", relativePath)
		tracker.Track(relativePath, ReasonSkippedBinary, false)
		return nil
	}

	options.Logger.Debug("processFile Success [%s]: Read %d bytes. Calling walkFn.", relativePath, len(content))
	if err := walkFn(relativePath, content, nil); err != nil {
		options.Logger.Error("processFile Error [%s]: Callback function returned error: %v", relativePath, err)
		return err
	}
	return nil
}
