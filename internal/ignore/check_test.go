package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file (and its parent directories) under root.
func writeFile(t *testing.T, root, relativePath, content string) {
	t.Helper()
	fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", relativePath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", relativePath, err)
	}
}

func TestRuleSetExcludes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		rules    string
		path     string
		isDir    bool
		excluded bool
	}{
		{name: "last match wins", rules: "*.log\n!important.log", path: "important.log", excluded: false},
		{name: "broad rule", rules: "*.log\n!important.log", path: "debug.log", excluded: true},
		{name: "unanchored matches any segment", rules: "*.log", path: "logs/app/debug.log", excluded: true},
		{name: "earlier negation loses", rules: "!important.log\n*.log", path: "important.log", excluded: true},
		{name: "dir-only matches directory", rules: "node_modules/", path: "node_modules", isDir: true, excluded: true},
		{name: "dir-only nested directory", rules: "node_modules/", path: "packages/web/node_modules", isDir: true, excluded: true},
		{name: "dir-only skips files", rules: "node_modules/", path: "node_modules", excluded: false},
		{name: "leading slash anchors", rules: "/dist", path: "dist", isDir: true, excluded: true},
		{name: "leading slash not nested", rules: "/dist", path: "web/dist", isDir: true, excluded: false},
		{name: "internal slash anchors", rules: "docs/*.md", path: "docs/readme.md", excluded: true},
		{name: "anchored star stays in segment", rules: "docs/*.md", path: "docs/sub/readme.md", excluded: false},
		{name: "anchored not nested", rules: "docs/*.md", path: "site/docs/readme.md", excluded: false},
		{name: "question mark one char", rules: "a?c", path: "abc", excluded: true},
		{name: "question mark not slash", rules: "a?c", path: "a/c", excluded: false},
		{name: "star does not cross slash", rules: "src*", path: "src/main.go", excluded: false},
		{name: "segment start only", rules: "test", path: "src/latest", excluded: false},
		{name: "double star prefix root", rules: "**/temp", path: "temp", isDir: true, excluded: true},
		{name: "double star prefix deep", rules: "**/temp", path: "a/b/temp", isDir: true, excluded: true},
		{name: "double star suffix", rules: "build/**", path: "build/x/y.o", excluded: true},
		{name: "double star suffix not dir itself", rules: "build/**", path: "build", isDir: true, excluded: false},
		{name: "trailing star not parent dir", rules: "foo/*\n!foo/keep.txt", path: "foo", isDir: true, excluded: false},
		{name: "trailing star entries", rules: "foo/*\n!foo/keep.txt", path: "foo/drop.txt", excluded: true},
		{name: "trailing star negated entry", rules: "foo/*\n!foo/keep.txt", path: "foo/keep.txt", excluded: false},
		{name: "trailing star subdirectory", rules: "foo/*", path: "foo/sub", isDir: true, excluded: true},
		{name: "char class", rules: "file[0-2].txt", path: "file1.txt", excluded: true},
		{name: "char class miss", rules: "file[0-2].txt", path: "file9.txt", excluded: false},
		{name: "negated dir rule", rules: "vendor/\n!vendor/", path: "vendor", isDir: true, excluded: false},
		{name: "empty rule set", rules: "", path: "anything.go", excluded: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			rs := Compile(testCase.rules)
			got := rs.Excludes(Candidate{Path: testCase.path, IsDir: testCase.isDir})
			if got != testCase.excluded {
				t.Fatalf("Excludes(%q, dir=%v) with %q = %v, want %v",
					testCase.path, testCase.isDir, testCase.rules, got, testCase.excluded)
			}
		})
	}
}

func TestRuleSetTrailingSlashCandidate(t *testing.T) {
	t.Parallel()

	rs := Compile("build/")
	if !rs.Excludes(NewCandidate("build/", false)) {
		t.Fatalf("a trailing slash must mark the candidate as a directory")
	}
	if !rs.Excludes(NewCandidate(`out\build\`, false)) {
		t.Fatalf("backslash paths must be normalized")
	}
}

func TestNilRuleSetMatchesNothing(t *testing.T) {
	t.Parallel()

	var rs *RuleSet
	if rs.Excludes(Candidate{Path: "a.go"}) {
		t.Fatalf("nil rule set must not exclude")
	}
	if rs.Len() != 0 || rs.Rules() != nil {
		t.Fatalf("nil rule set must be empty")
	}
}

func TestExplainMatchReportsDecidingRule(t *testing.T) {
	t.Parallel()

	rs := Compile("*.log\n# keep this one\n!important.log\n")

	verdict := rs.ExplainMatch(Candidate{Path: "important.log"})
	if !verdict.Included || verdict.Reason != GitignoreNegated {
		t.Fatalf("unexpected verdict: %v", verdict)
	}
	if verdict.Rule == nil || verdict.Rule.Line != 3 || verdict.Pattern != "!important.log" {
		t.Fatalf("deciding rule must be line 3, got %+v", verdict.Rule)
	}

	verdict = rs.ExplainMatch(Candidate{Path: "debug.log"})
	if verdict.Included || verdict.Reason != GitignoreMatch || verdict.Rule.Line != 1 {
		t.Fatalf("unexpected verdict: %v", verdict)
	}

	verdict = rs.ExplainMatch(Candidate{Path: "main.go"})
	if !verdict.Included || verdict.Reason != NotMatched || verdict.Rule != nil {
		t.Fatalf("unexpected verdict: %v", verdict)
	}
}

func TestFilterTokens(t *testing.T) {
	t.Parallel()

	filter, err := New(t.TempDir(), WithRuleSet(Compile("!keep-test.txt")), WithTokens([]string{"TEST", " ", ""}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !filter.IsExcluded(Candidate{Path: "src/test/a.ts"}) {
		t.Fatalf("token must match case-insensitively")
	}
	if !filter.IsExcluded(Candidate{Path: "src/Test", IsDir: true}) {
		t.Fatalf("token must exclude directories")
	}

	verdict := filter.Explain(Candidate{Path: "keep-test.txt"})
	if verdict.Included || verdict.Reason != TokenMatch || verdict.Token != "test" {
		t.Fatalf("a negation rule must not rescue a token match, got %v", verdict)
	}

	if filter.IsExcluded(Candidate{Path: "src/main.ts"}) {
		t.Fatalf("blank tokens must be dropped")
	}
	if got := filter.Tokens(); len(got) != 1 || got[0] != "test" {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestFilterCombinesSources(t *testing.T) {
	t.Parallel()

	filter, err := New(t.TempDir(), WithRuleSet(Compile("*.log")), WithTokens([]string{"secret"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	testCases := []struct {
		candidate Candidate
		reason    Reason
		included  bool
	}{
		{candidate: Candidate{Path: "app.log"}, reason: GitignoreMatch},
		{candidate: Candidate{Path: "secret/app.go"}, reason: TokenMatch},
		{candidate: Candidate{Path: ".git", IsDir: true}, reason: GitDirectory},
		{candidate: Candidate{Path: "sub/.git/config"}, reason: GitDirectory},
		{candidate: Candidate{Path: ".gitkeep"}, reason: NotMatched, included: true},
		{candidate: Candidate{Path: "", IsDir: true}, reason: NotMatched, included: true},
	}

	for _, testCase := range testCases {
		verdict := filter.Explain(testCase.candidate)
		if verdict.Included != testCase.included || verdict.Reason != testCase.reason {
			t.Errorf("%q: got %v, want included=%v reason=%v",
				testCase.candidate.String(), verdict, testCase.included, testCase.reason)
		}
	}
}

func TestFilterGitDirectoryOptional(t *testing.T) {
	t.Parallel()

	filter, err := New(t.TempDir(), WithRuleSet(&RuleSet{}), WithGitIgnore(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if filter.IsExcluded(Candidate{Path: ".git", IsDir: true}) {
		t.Fatalf(".git must be included when git ignoring is disabled")
	}
}

func TestFilterLoadsRootIgnoreFile(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		files  map[string]string
		source string
		rules  int
	}{
		{name: "none", files: nil, source: "", rules: 0},
		{name: "gitignore", files: map[string]string{".gitignore": "a\nb\n"}, source: ".gitignore", rules: 2},
		{name: "ignore fallback", files: map[string]string{".ignore": "a\n"}, source: ".ignore", rules: 1},
		{name: "gitignore wins", files: map[string]string{".gitignore": "a\n", ".ignore": "a\nb\nc\n"}, source: ".gitignore", rules: 1},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			for name, content := range testCase.files {
				writeFile(t, root, name, content)
			}

			filter, err := New(root)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if filter.RuleSet().Source() != testCase.source || filter.RuleSet().Len() != testCase.rules {
				t.Fatalf("got source %q with %d rules, want %q with %d",
					filter.RuleSet().Source(), filter.RuleSet().Len(), testCase.source, testCase.rules)
			}
		})
	}
}

func TestFilterNestedIgnoreFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.bak\n")
	writeFile(t, root, "sub/.gitignore", "*.tmp\n!keep.tmp\n")
	writeFile(t, root, "sub/deeper/.gitignore", "!again.tmp\n")

	filter, err := New(root, WithNested(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	testCases := []struct {
		path     string
		excluded bool
	}{
		{path: "a.tmp", excluded: false},
		{path: "a.bak", excluded: true},
		{path: "sub/a.tmp", excluded: true},
		{path: "sub/keep.tmp", excluded: false},
		{path: "sub/deeper/x.tmp", excluded: true},
		{path: "sub/deeper/again.tmp", excluded: false},
		{path: "sub/deeper/a.bak", excluded: true},
	}
	for _, testCase := range testCases {
		if got := filter.IsExcluded(Candidate{Path: testCase.path}); got != testCase.excluded {
			t.Errorf("IsExcluded(%q) = %v, want %v", testCase.path, got, testCase.excluded)
		}
	}

	verdict := filter.Explain(Candidate{Path: "sub/a.tmp"})
	if verdict.Source != "sub/.gitignore" || verdict.Reason != GitignoreMatch {
		t.Fatalf("unexpected nested verdict: %v", verdict)
	}

	plain, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if plain.IsExcluded(Candidate{Path: "sub/a.tmp"}) {
		t.Fatalf("nested ignore files must be ignored unless enabled")
	}
}

func TestLoadIgnoreTextSkipsDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".gitignore"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, root, ".ignore", "dist/\n")

	text, name, err := LoadIgnoreText(root, DefaultIgnoreFileNames()...)
	if err != nil {
		t.Fatalf("LoadIgnoreText: %v", err)
	}
	if name != ".ignore" || text != "dist/\n" {
		t.Fatalf("got %q from %q", text, name)
	}
}
