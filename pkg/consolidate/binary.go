package consolidate

import (
	"bytes"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// sniffLength bounds the prefix inspected for control characters and MIME detection.
const sniffLength = 8000

// controlRatioThreshold is the share of control characters above which text is treated as binary.
const controlRatioThreshold = 0.3

// IsBinary reports whether data looks like binary content: it holds a NUL byte,
// is not valid UTF-8, or its first sniffLength bytes are mostly control characters.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false // Empty files are text
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	if !utf8.Valid(data) {
		return true
	}

	sample := data
	if len(sample) > sniffLength {
		sample = sample[:sniffLength]
	}
	total, control := 0, 0
	for len(sample) > 0 {
		r, size := utf8.DecodeRune(sample)
		sample = sample[size:]
		if r == utf8.RuneError && size <= 1 {
			break // Truncated rune at the sniff boundary
		}
		total++
		if isControl(r) {
			control++
		}
	}
	if total == 0 {
		return false
	}
	return float64(control)/float64(total) > controlRatioThreshold
}

// isControl reports whether r is a control character other than common whitespace.
func isControl(r rune) bool {
	switch r {
	case '\n', '\r', '\t', '\f', '\v':
		return false
	}
	return r < 0x20 || r == 0x7f
}

// DetectMimeType names the content type of a file, preferring the extension
// and falling back to content sniffing.
func DetectMimeType(name string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	if len(data) > sniffLength {
		data = data[:sniffLength]
	}
	return http.DetectContentType(data)
}
