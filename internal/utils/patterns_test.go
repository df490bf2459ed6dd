package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList("go md", "ts,js", "  ", "rs\tpy")
	want := []string{"go", "md", "ts", "js", "rs", "py"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
	if got := SplitList(); got != nil {
		t.Fatalf("SplitList() = %v, want nil", got)
	}
}

func TestNormalizeExtensions(t *testing.T) {
	t.Parallel()

	got := NormalizeExtensions([]string{".MD", "*.md", "go", " ", "*.", "Go"})
	want := []string{"md", "go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeExtensions = %v, want %v", got, want)
	}
}

func TestDeduplicatePatterns(t *testing.T) {
	t.Parallel()

	got := DeduplicatePatterns([]string{"b", "a", "b", "c", "a"})
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DeduplicatePatterns = %v, want %v", got, want)
	}
}

func TestExtension(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"a.ts":            "ts",
		"a.test.TS":       "ts",
		"Makefile":        "",
		".gitignore":      "gitignore",
		"trailing.":       "",
		"src/v1.2/Readme": "",
		"src/lib/x.d.ts":  "ts",
	}
	for name, want := range testCases {
		if got := Extension(name); got != want {
			t.Errorf("Extension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		data   []byte
		binary bool
	}{
		{name: "empty", data: nil, binary: false},
		{name: "text", data: []byte("package main\n"), binary: false},
		{name: "utf8", data: []byte("héllo wörld"), binary: false},
		{name: "nul byte", data: []byte("a\x00b"), binary: true},
		{name: "invalid utf8", data: []byte{0xff, 0xfe, 0x41}, binary: true},
		{name: "rune cut at sniff boundary", data: []byte(strings.Repeat("a", sniffLength-1) + "é"), binary: false},
	}

	for _, testCase := range testCases {
		if got := IsBinary(testCase.data); got != testCase.binary {
			t.Errorf("%s: IsBinary = %v, want %v", testCase.name, got, testCase.binary)
		}
	}
}
