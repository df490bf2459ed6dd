// Package ignore decides which paths under a root are excluded.
//
// Rules come from a gitignore-style file compiled into an ordered RuleSet
// (last match wins, "!" negates, trailing "/" restricts to directories). A
// Filter OR-combines the rule set with case-insensitive substring tokens,
// the .git directory rule, and optional nested ignore files.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	GitIgnoreFileName = ".gitignore"
	IgnoreFileName    = ".ignore"
)

// DefaultIgnoreFileNames returns the ignore file names tried at the root, in order.
func DefaultIgnoreFileNames() []string {
	return []string{GitIgnoreFileName, IgnoreFileName}
}

// LoadIgnoreText returns the content and name of the first regular file in
// names that exists under rootDir. It returns an empty name when none exists.
//
// #nosec G304
func LoadIgnoreText(rootDir string, names ...string) (text string, name string, err error) {
	for _, candidate := range names {
		path := filepath.Join(rootDir, candidate)
		info, statErr := os.Stat(path)
		if statErr != nil {
			if errors.Is(statErr, fs.ErrNotExist) {
				continue
			}
			return "", "", fmt.Errorf("ignore: stat %s: %w", path, statErr)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", "", fmt.Errorf("ignore: read %s: %w", path, readErr)
		}
		return string(content), candidate, nil
	}
	return "", "", nil
}

// NewFromConfig creates a Filter from a Config struct
func NewFromConfig(cfg Config) (*Filter, error) {
	options := []Option{
		WithTokens(cfg.Tokens),
		WithNested(cfg.Nested),
		WithGitIgnore(cfg.IgnoreGit),
		WithLogger(cfg.Logger),
	}
	if len(cfg.IgnoreFileNames) > 0 {
		options = append(options, WithIgnoreFileNames(cfg.IgnoreFileNames...))
	}
	if cfg.Rules != nil {
		options = append(options, WithRuleSet(cfg.Rules))
	}
	return New(cfg.RootDir, options...)
}
