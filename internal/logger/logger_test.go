package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		verbose bool
		level   string
		want    []string
		absent  []string
	}{
		{name: "default info", want: []string{"INFO info", "WARN warn", "ERROR error"}, absent: []string{"debug"}},
		{name: "verbose", verbose: true, want: []string{"DEBUG debug", "INFO info"}},
		{name: "warn", level: "WARNING", want: []string{"WARN warn", "ERROR error"}, absent: []string{"info", "debug"}},
		{name: "none", level: "off", absent: []string{"debug", "info", "warn", "error"}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := New(&buf, testCase.verbose, false)
			if testCase.level != "" {
				l.SetLevel(testCase.level)
			}

			l.Debug("%s", "debug")
			l.Info("%s", "info")
			l.Warn("%s", "warn")
			l.Error("%s", "error")

			got := buf.String()
			for _, want := range testCase.want {
				if !strings.Contains(got, want) {
					t.Errorf("output %q lacks %q", got, want)
				}
			}
			for _, absent := range testCase.absent {
				if strings.Contains(got, " "+absent+"\n") {
					t.Errorf("output %q must not contain %q", got, absent)
				}
			}
		})
	}
}

func TestLineFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, false, false).Info("Loaded %d rules from %s.", 3, ".gitignore")

	pattern := regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} INFO Loaded 3 rules from \.gitignore\.\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Fatalf("unexpected line %q", buf.String())
	}
}

func TestVerboseModeTracksLevel(t *testing.T) {
	t.Parallel()

	l := New(&bytes.Buffer{}, false, false)
	if l.VerboseMode {
		t.Fatalf("VerboseMode must be off by default")
	}
	l.SetLevel("debug")
	if !l.VerboseMode {
		t.Fatalf("VerboseMode must follow the debug level")
	}
}
