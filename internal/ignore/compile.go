package ignore

import (
	"fmt"
	"regexp"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// Compile parses ignore-file text into a RuleSet. Blank lines and comments
// are skipped. Compile never fails: a line that cannot be translated is kept
// as a literal pattern.
func Compile(text string) *RuleSet {
	rs := &RuleSet{}
	for i, raw := range strings.Split(text, "\n") {
		rule, ok := compileLine(raw, i+1)
		if ok {
			rs.rules = append(rs.rules, rule)
		}
	}
	return rs
}

// compileNamed compiles text and records where it came from.
func compileNamed(text, source string) *RuleSet {
	rs := Compile(text)
	rs.source = source
	return rs
}

func compileLine(raw string, lineNo int) (Rule, bool) {
	line := trimTrailingSpaces(strings.TrimRight(raw, "\r"))
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}

	rule := Rule{Line: lineNo}
	switch {
	case strings.HasPrefix(line, `\#`), strings.HasPrefix(line, `\!`):
		line = line[1:]
	case strings.HasPrefix(line, "!"):
		rule.Negation = true
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") && !strings.HasSuffix(line, `\/`) {
		rule.DirectoryOnly = true
		line = strings.TrimRight(line, "/")
	}
	rule.Pattern = line

	// a leading slash anchors but is not part of the matched text
	body := line
	if strings.HasPrefix(body, "/") {
		rule.Anchored = true
		body = strings.TrimLeft(body, "/")
	}
	if strings.Contains(body, "/") {
		rule.Anchored = true
	}
	if body == "" {
		return Rule{}, false
	}

	prefix := `(?:^|/)`
	if rule.Anchored {
		prefix = `^`
	}
	expr, err := regexp.Compile(prefix + globToRegexp(body) + `$`)
	if err != nil {
		expr = regexp.MustCompile(prefix + regexp.QuoteMeta(body) + `$`)
	}
	rule.expr = expr
	return rule, true
}

// globToRegexp translates glob syntax into a regular expression body.
// "*" and "?" never cross a "/"; "**" spans directories.
func globToRegexp(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '*' && strings.HasPrefix(pattern[i:], "**/") && (i == 0 || pattern[i-1] == '/'):
			b.WriteString(`(?:.*/)?`)
			i += 2
		case c == '*' && pattern[i:] == "**" && i > 0 && pattern[i-1] == '/':
			// "dir/**" matches everything beneath dir, not dir itself
			b.WriteString(`.+`)
			i++
		case c == '*' && strings.HasPrefix(pattern[i:], "**"):
			b.WriteString(`.*`)
			i++
		case c == '*' && i == len(pattern)-1 && i > 0 && pattern[i-1] == '/':
			// "dir/*" matches entries of dir, never "dir/" itself
			b.WriteString(`[^/]+`)
		case c == '*':
			b.WriteString(`[^/]*`)
		case c == '?':
			b.WriteString(`[^/]`)
		case c == '\\' && i+1 < len(pattern):
			i++
			b.WriteString(regexp.QuoteMeta(string(pattern[i])))
		case c == '[':
			end := charClassEnd(pattern, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(charClass(pattern[i+1 : end]))
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}

// charClassEnd returns the index of the "]" closing the class opened at start, or -1.
func charClassEnd(pattern string, start int) int {
	i := start + 1
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for ; i < len(pattern); i++ {
		switch pattern[i] {
		case ']':
			return i
		case '/':
			return -1
		}
	}
	return -1
}

func charClass(inner string) string {
	var b strings.Builder
	b.WriteByte('[')
	if strings.HasPrefix(inner, "!") || strings.HasPrefix(inner, "^") {
		b.WriteByte('^')
		inner = inner[1:]
	}
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
		}
		b.WriteByte(inner[i])
	}
	b.WriteByte(']')
	return b.String()
}

// trimTrailingSpaces removes trailing spaces unless escaped by "\".
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			return s[:len(s)-2] + s[len(s)-1:]
		}
		s = s[:len(s)-1]
	}
	return s
}

// Diagnostic is a malformed ignore-file line. It is reported, never fatal.
type Diagnostic struct {
	Line   int
	Column int
	Text   string
	Err    error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d:%d %q: %v", d.Line, d.Column, d.Text, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// CompileDiagnostics reports the lines a strict gitignore parser rejects.
// Compile still turns those lines into best-effort rules.
func CompileDiagnostics(text string) []Diagnostic {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var diagnostics []Diagnostic
	gitignore.New(strings.NewReader(text), "", func(e gitignore.Error) bool {
		pos := e.Position()
		d := Diagnostic{Line: pos.Line, Column: pos.Column, Err: e.Underlying()}
		if pos.Line >= 1 && pos.Line <= len(lines) {
			d.Text = lines[pos.Line-1]
		}
		diagnostics = append(diagnostics, d)
		return true
	})
	return diagnostics
}
