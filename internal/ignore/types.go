package ignore

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/bethropolis/combiner/internal/utils"
)

// Rule is one compiled line of an ignore file.
type Rule struct {
	// Pattern is the glob text with the leading "!" and trailing "/" removed.
	Pattern string
	// Negation is set for lines starting with "!".
	Negation bool
	// DirectoryOnly is set for lines ending with "/".
	DirectoryOnly bool
	// Anchored is set when the pattern contains a "/" other than a trailing one.
	Anchored bool
	// Line is the 1-based line number in the source text.
	Line int

	expr *regexp.Regexp
}

// String renders the rule the way it was written.
func (r Rule) String() string {
	var b strings.Builder
	if r.Negation {
		b.WriteByte('!')
	}
	b.WriteString(r.Pattern)
	if r.DirectoryOnly {
		b.WriteByte('/')
	}
	return b.String()
}

// RuleSet is an ordered, immutable list of rules. A nil RuleSet matches nothing.
type RuleSet struct {
	rules  []Rule
	source string
}

// Rules returns a copy of the compiled rules in source order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Source names the ignore file the rules were loaded from, if any.
func (rs *RuleSet) Source() string {
	if rs == nil {
		return ""
	}
	return rs.source
}

// Candidate is a path under the root being evaluated.
type Candidate struct {
	// Path is relative to the root and uses forward slashes.
	Path  string
	IsDir bool
}

// NewCandidate normalizes a relative path (either separator, optional "./"
// prefix, optional trailing slash) into a Candidate. A trailing slash marks
// a directory even if isDir is false.
func NewCandidate(relativePath string, isDir bool) Candidate {
	p := strings.ReplaceAll(relativePath, `\`, "/")
	if strings.HasSuffix(p, "/") {
		isDir = true
	}
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	if p != "" {
		p = path.Clean(p)
	}
	if p == "." {
		p = ""
	}
	return Candidate{Path: p, IsDir: isDir}
}

// String returns the path with a trailing slash for directories.
func (c Candidate) String() string {
	if c.IsDir && c.Path != "" {
		return c.Path + "/"
	}
	return c.Path
}

// Reason explains an inclusion verdict.
type Reason int

const (
	NotMatched Reason = iota
	GitignoreMatch
	GitignoreNegated
	TokenMatch
	ExtensionMismatch
	SelfOutput
	GitDirectory
)

func (r Reason) String() string {
	switch r {
	case NotMatched:
		return "not matched"
	case GitignoreMatch:
		return "ignore rule"
	case GitignoreNegated:
		return "negated ignore rule"
	case TokenMatch:
		return "exclusion token"
	case ExtensionMismatch:
		return "extension not allowed"
	case SelfOutput:
		return "previous output"
	case GitDirectory:
		return ".git directory"
	default:
		return "unknown"
	}
}

// Verdict is the diagnostic result of evaluating one candidate.
type Verdict struct {
	Included bool
	Reason   Reason
	// Rule is the deciding rule for GitignoreMatch/GitignoreNegated from the root rule set.
	Rule *Rule
	// Pattern is the deciding pattern text, also set for nested ignore files.
	Pattern string
	// Source names the ignore file holding the deciding pattern.
	Source string
	// Token is the exclusion token that matched, for TokenMatch.
	Token string
}

// String renders the verdict for logs.
func (v Verdict) String() string {
	state := "excluded"
	if v.Included {
		state = "included"
	}
	switch {
	case v.Token != "":
		return fmt.Sprintf("%s (%s %q)", state, v.Reason, v.Token)
	case v.Pattern != "" && v.Source != "":
		return fmt.Sprintf("%s (%s %q in %s)", state, v.Reason, v.Pattern, v.Source)
	case v.Pattern != "":
		return fmt.Sprintf("%s (%s %q)", state, v.Reason, v.Pattern)
	default:
		return fmt.Sprintf("%s (%s)", state, v.Reason)
	}
}

// Filter combines exclusion tokens with ignore rules. It decides whether a
// candidate is excluded; it never rescues a candidate across sources.
type Filter struct {
	rootDir string
	rules   *RuleSet
	tokens  []string
	nested  *nestedIgnores

	ignoreFileNames []string
	nestedEnabled   bool
	ignoreGit       bool
	logger          utils.Logger
}

// Config holds configuration options for the filter
type Config struct {
	RootDir         string
	Tokens          []string
	IgnoreFileNames []string
	Nested          bool
	IgnoreGit       bool
	Rules           *RuleSet
	Logger          utils.Logger
}
