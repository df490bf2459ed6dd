// Package summary handles display of scan results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/combiner/internal/tokenizer"
	"github.com/bethropolis/combiner/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults shows the end results of a run
func DisplayResults(
	logger Logger,
	fileCount int64,
	destination string,
	duration time.Duration,
	quiet bool,
) {
	if !quiet {
		logger.Info("Finished! Added %d files to %s", fileCount, destination)
		logger.Info("Scan complete in %v.", duration.Round(time.Millisecond))
	}
}

// DisplayTokens reports the token count of the combined document.
func DisplayTokens(logger Logger, result tokenizer.Result) {
	logger.Info("Combined document: %d tokens (%s)", result.Tokens, result.Counter)
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		// Sort for consistent output
		items := append([]walker.SkippedItem(nil), skippedItems...)
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Path < items[j].Path
		})
		for _, item := range items {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			line := fmt.Sprintf("Skipped %s: %-50s [%s]", color.YellowString(typeStr), item.Path, item.Reason)
			if item.Detail != "" {
				line += " " + item.Detail
			}
			fmt.Fprintln(output, line)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
