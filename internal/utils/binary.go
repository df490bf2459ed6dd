package utils

import "unicode/utf8"

// sniffLength is the number of leading bytes inspected when detecting binary content.
const sniffLength = 8000

// IsBinary reports whether data looks like binary content: a NUL byte or
// invalid UTF-8 within the first sniffLength bytes.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > sniffLength {
		sample = sample[:sniffLength]
		// do not let a multi-byte rune cut at the boundary count as invalid
		for i := 0; i < utf8.UTFMax && len(sample) > 0 && !utf8.RuneStart(data[len(sample)]); i++ {
			sample = sample[:len(sample)-1]
		}
	}
	for _, b := range sample {
		if b == 0 {
			return true
		}
	}
	return !utf8.Valid(sample)
}
