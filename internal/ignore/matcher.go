package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/combiner/internal/utils"
)

// New creates and initializes a Filter rooted at rootDir.
func New(rootDir string, opts ...Option) (*Filter, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	filter := &Filter{
		rootDir:         absRootDir,
		ignoreFileNames: DefaultIgnoreFileNames(),
		ignoreGit:       true,
		logger:          utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(filter)
	}

	filter.init()
	return filter, nil
}

// init loads the root ignore file unless a rule set was supplied, and sets up
// nested ignore files when enabled.
func (f *Filter) init() {
	f.logger.Debug("ignore.New: Initializing for root: %s", f.rootDir)
	f.logger.Debug("ignore.New: ignoreGit flag set to: %v, nested: %v", f.ignoreGit, f.nestedEnabled)

	tokens := make([]string, 0, len(f.tokens))
	for _, token := range f.tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	f.tokens = utils.DeduplicatePatterns(tokens)

	if f.rules == nil {
		f.rules = f.loadRootRules()
	}

	if f.nestedEnabled && len(f.ignoreFileNames) > 0 {
		f.nested = newNestedIgnores(f.rootDir, f.ignoreFileNames[0], f.logger)
	}
}

// loadRootRules reads the first ignore file present at the root. A missing
// or unreadable file yields an empty rule set.
func (f *Filter) loadRootRules() *RuleSet {
	text, name, err := LoadIgnoreText(f.rootDir, f.ignoreFileNames...)
	if err != nil {
		f.logger.Warn("ignore.New: Error loading ignore file from '%s': %v. Continuing without ignore rules.", f.rootDir, err)
		return &RuleSet{}
	}
	if name == "" {
		f.logger.Info("No %s file found. Proceeding without ignore rules.", strings.Join(f.ignoreFileNames, " or "))
		return &RuleSet{}
	}

	for _, diagnostic := range CompileDiagnostics(text) {
		f.logger.Warn("%s: %v", name, diagnostic)
	}

	rules := compileNamed(text, name)
	f.logger.Info("Loaded %d rules from %s.", rules.Len(), name)
	for _, rule := range rules.rules {
		f.logger.Debug("ignore.New: [line %d] %s", rule.Line, rule.String())
	}
	return rules
}

// RuleSet returns the root rule set in use.
func (f *Filter) RuleSet() *RuleSet { return f.rules }

// Tokens returns the normalized exclusion tokens.
func (f *Filter) Tokens() []string {
	out := make([]string, len(f.tokens))
	copy(out, f.tokens)
	return out
}
