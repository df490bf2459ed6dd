// Package walker handles directory traversal and file processing
package walker

import (
	"github.com/bethropolis/combiner/internal/ignore"
)

// WalkFunc is the callback function type used by Walk. It receives each
// included file in traversal order. err is set, and content nil, when the
// file passed every filter but could not be read. A non-nil return aborts
// the walk.
type WalkFunc func(relativePath string, content []byte, err error) error

// WalkResult is the ordered list of included file paths, relative to the root.
type WalkResult []string

// SkippedReason clarifies why a file/directory was not processed.
type SkippedReason string

const (
	ReasonIgnoredRule       SkippedReason = "Ignored (Ignore File Rule)"
	ReasonIgnoredToken      SkippedReason = "Ignored (Exclusion Token)"
	ReasonIgnoredGitDir     SkippedReason = "Ignored (.git Directory)"
	ReasonFilteredExtension SkippedReason = "Filtered (Extension Mismatch)"
	ReasonSelfOutput        SkippedReason = "Filtered (Previous Output)"
	ReasonSkippedSizeLimit  SkippedReason = "Skipped (Size Limit Exceeded)"
	ReasonSkippedNotRegular SkippedReason = "Skipped (Not a Regular File)"
	ReasonSkippedBinary     SkippedReason = "Skipped (Binary Content)"
	ReasonSkippedPermError  SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedWalkError  SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedReadError  SkippedReason = "Skipped (Read Error)"
	ReasonSkippedInfoError  SkippedReason = "Skipped (File Info Error)"
	ReasonSkippedPathError  SkippedReason = "Skipped (Path Calculation Error)"
)

// reasonForVerdict maps an exclusion verdict onto a skipped reason.
func reasonForVerdict(v ignore.Verdict) SkippedReason {
	switch v.Reason {
	case ignore.TokenMatch:
		return ReasonIgnoredToken
	case ignore.GitDirectory:
		return ReasonIgnoredGitDir
	case ignore.ExtensionMismatch:
		return ReasonFilteredExtension
	case ignore.SelfOutput:
		return ReasonSelfOutput
	default:
		return ReasonIgnoredRule
	}
}

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
	Detail string        `json:"detail,omitempty"`
}

// SkippedTracker records skipped items in traversal order.
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// TrackVerdict adds an item excluded by a filter verdict.
func (st *SkippedTracker) TrackVerdict(path string, verdict ignore.Verdict, isDir bool) {
	st.items = append(st.items, SkippedItem{
		Path:   path,
		Reason: reasonForVerdict(verdict),
		IsDir:  isDir,
		Detail: verdict.String(),
	})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	return st.items
}
