package ignore

import "github.com/bethropolis/combiner/internal/utils"

// Option functions for configuration
type Option func(*Filter)

// WithTokens sets the case-insensitive substring tokens that exclude a path.
func WithTokens(tokens []string) Option {
	return func(f *Filter) {
		f.tokens = append([]string(nil), tokens...)
	}
}

// WithRuleSet uses rs instead of loading an ignore file from the root.
func WithRuleSet(rs *RuleSet) Option {
	return func(f *Filter) {
		f.rules = rs
	}
}

// WithIgnoreFileNames sets the ignore file names tried at the root, in order.
// The first name is also used for nested ignore files.
func WithIgnoreFileNames(names ...string) Option {
	return func(f *Filter) {
		if len(names) > 0 {
			f.ignoreFileNames = append([]string(nil), names...)
		}
	}
}

func WithNested(enabled bool) Option {
	return func(f *Filter) {
		f.nestedEnabled = enabled
	}
}

func WithGitIgnore(ignore bool) Option {
	return func(f *Filter) {
		f.ignoreGit = ignore
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}
