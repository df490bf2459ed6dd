package ignore

import (
	"strings"
)

// match reports whether the rule's expression matches the candidate. Rules
// are tested against the bare path and, for directories, the path with its
// trailing separator.
func (r *Rule) match(c Candidate) bool {
	if r.expr == nil || c.Path == "" {
		return false
	}
	if r.expr.MatchString(c.Path) {
		return true
	}
	return c.IsDir && r.expr.MatchString(c.Path+"/")
}

// ExplainMatch evaluates every rule in order and reports the verdict of the
// last one that matched. Directory-only rules are skipped for files.
func (rs *RuleSet) ExplainMatch(c Candidate) Verdict {
	verdict := Verdict{Included: true, Reason: NotMatched}
	if rs == nil {
		return verdict
	}

	for i := range rs.rules {
		rule := &rs.rules[i]
		if rule.DirectoryOnly && !c.IsDir {
			continue
		}
		if !rule.match(c) {
			continue
		}
		verdict.Rule = rule
		verdict.Pattern = rule.String()
		verdict.Source = rs.source
		if rule.Negation {
			verdict.Included = true
			verdict.Reason = GitignoreNegated
		} else {
			verdict.Included = false
			verdict.Reason = GitignoreMatch
		}
	}
	return verdict
}

// Excludes reports whether the last matching rule excludes c. A candidate no
// rule matches is not excluded.
func (rs *RuleSet) Excludes(c Candidate) bool {
	return !rs.ExplainMatch(c).Included
}

// IsExcluded reports whether the candidate is excluded by any source.
func (f *Filter) IsExcluded(c Candidate) bool {
	return !f.Explain(c).Included
}

// Explain evaluates the candidate against every exclusion source. Sources are
// OR-combined: the first source that excludes decides, and a negated ignore
// rule never rescues a candidate another source excluded.
func (f *Filter) Explain(c Candidate) Verdict {
	if f == nil || c.Path == "" {
		// never exclude the root itself
		return Verdict{Included: true, Reason: NotMatched}
	}

	f.logger.Debug("ignore.Explain: Checking path: %q (isDir: %v)", c.Path, c.IsDir)

	if f.ignoreGit && isPathInGitDir(c) {
		f.logger.Debug("ignore.Explain: Excluded %q (.git rule)", c.Path)
		return Verdict{Included: false, Reason: GitDirectory}
	}

	if token, ok := f.matchToken(c); ok {
		f.logger.Debug("ignore.Explain: Excluded %q (token %q)", c.Path, token)
		return Verdict{Included: false, Reason: TokenMatch, Token: token}
	}

	verdict := f.rules.ExplainMatch(c)
	if !verdict.Included {
		f.logger.Debug("ignore.Explain: Excluded %q by rule %q (line %d)", c.Path, verdict.Pattern, verdict.Rule.Line)
		return verdict
	}

	if f.nested != nil {
		if nestedVerdict, ok := f.nested.explain(c); ok {
			if !nestedVerdict.Included {
				f.logger.Debug("ignore.Explain: Excluded %q by %s rule %q", c.Path, nestedVerdict.Source, nestedVerdict.Pattern)
				return nestedVerdict
			}
			if verdict.Reason == NotMatched {
				verdict = nestedVerdict
			}
		}
	}

	f.logger.Debug("ignore.Explain: Path %q NOT excluded by any rule", c.Path)
	return verdict
}

// matchToken returns the first token contained, case-insensitively, in the
// candidate's path. Directories are tested with their trailing slash.
func (f *Filter) matchToken(c Candidate) (string, bool) {
	if len(f.tokens) == 0 {
		return "", false
	}
	lowered := strings.ToLower(c.String())
	for _, token := range f.tokens {
		if strings.Contains(lowered, token) {
			return token, true
		}
	}
	return "", false
}

// isPathInGitDir checks if a path is inside a .git directory
func isPathInGitDir(c Candidate) bool {
	parts := strings.Split(c.Path, "/")
	for i, part := range parts {
		if part == ".git" && (c.IsDir || i < len(parts)-1) {
			return true
		}
	}
	return false
}
