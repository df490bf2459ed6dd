package utils

import "strings"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := seen[pattern]; exists {
			continue
		}
		seen[pattern] = struct{}{}
		result = append(result, pattern)
	}
	return result
}

// SplitList splits user-supplied list values on commas and whitespace, dropping
// empty items. Both "go md" and "go,md" yield [go md].
func SplitList(values ...string) []string {
	var out []string
	for _, value := range values {
		fields := strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		out = append(out, fields...)
	}
	return out
}

// NormalizeExtensions lower-cases extensions and strips leading "*." or "."
// so that ".MD", "*.md" and "md" all become "md".
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*")
		ext = strings.TrimLeft(ext, ".")
		ext = strings.ToLower(ext)
		if ext != "" {
			out = append(out, ext)
		}
	}
	return DeduplicatePatterns(out)
}

// Extension returns the lower-cased text after the last "." of a file
// name, or "" when the name has no dot.
func Extension(name string) string {
	if slash := strings.LastIndexByte(name, '/'); slash >= 0 {
		name = name[slash+1:]
	}
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
