package summary

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/combiner/internal/tokenizer"
	"github.com/bethropolis/combiner/internal/walker"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestDisplayResults(t *testing.T) {
	logger := &recordingLogger{}
	DisplayResults(logger, 3, "combined_project_files.md", 1500*time.Microsecond, false)

	if len(logger.lines) != 2 || logger.lines[0] != "Finished! Added 3 files to combined_project_files.md" {
		t.Fatalf("unexpected lines: %v", logger.lines)
	}

	quiet := &recordingLogger{}
	DisplayResults(quiet, 3, "out.md", time.Second, true)
	if len(quiet.lines) != 0 {
		t.Fatalf("quiet mode must not log, got %v", quiet.lines)
	}
}

func TestDisplayTokens(t *testing.T) {
	logger := &recordingLogger{}
	DisplayTokens(logger, tokenizer.Result{Tokens: 42, Counter: "gpt-4o"})
	if len(logger.lines) != 1 || logger.lines[0] != "Combined document: 42 tokens (gpt-4o)" {
		t.Fatalf("unexpected lines: %v", logger.lines)
	}
}

func TestDisplaySkippedItems(t *testing.T) {
	items := []walker.SkippedItem{
		{Path: "src/b.test.ts", Reason: walker.ReasonIgnoredToken, Detail: `excluded (exclusion token "test")`},
		{Path: "node_modules", Reason: walker.ReasonIgnoredRule, IsDir: true},
	}

	var out bytes.Buffer
	logger := &recordingLogger{}
	DisplaySkippedItems(logger, items, &out, false)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "Skipped DIR : node_modules") {
		t.Errorf("items must be sorted by path, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], `[Ignored (Exclusion Token)] excluded (exclusion token "test")`) {
		t.Errorf("unexpected line %q", lines[1])
	}
	if items[0].Path != "src/b.test.ts" {
		t.Errorf("the caller's slice must not be reordered")
	}
	if logger.lines[0] != "--- Skipped Items (2) ---" {
		t.Errorf("unexpected header %q", logger.lines[0])
	}
}

func TestDisplayNoSkippedItems(t *testing.T) {
	var out bytes.Buffer
	logger := &recordingLogger{}
	DisplaySkippedItems(logger, nil, &out, false)

	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
	if len(logger.lines) != 3 || logger.lines[1] != "No items were skipped." {
		t.Fatalf("unexpected lines: %v", logger.lines)
	}
}
