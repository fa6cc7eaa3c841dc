package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatSize renders a byte count as "1,234 bytes (1.21 KB)".
func formatSize(size int64) string {
	return printer.Sprintf("%d bytes (%.2f KB)", size, float64(size)/1024)
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// codeSpan wraps text in an inline code span, widening the delimiter when the
// text itself holds backticks.
func codeSpan(text string) string {
	text = escapeControl(text)
	if !strings.Contains(text, "`") {
		return "`" + text + "`"
	}
	delimiter := strings.Repeat("`", longestBacktickRun(text)+1)
	return delimiter + " " + text + " " + delimiter
}

// fenceFor returns a backtick fence long enough to enclose content verbatim.
func fenceFor(content string) string {
	length := longestBacktickRun(content) + 1
	if length < 3 {
		length = 3
	}
	return strings.Repeat("`", length)
}

func longestBacktickRun(text string) int {
	longest, current := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] == '`' {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}

// escapeControl writes control characters in names as Go escapes, so a file
// called "a\nb" cannot break a heading or tree line.
func escapeControl(name string) string {
	if !strings.ContainsFunc(name, unicode.IsControl) {
		return name
	}
	quoted := strconv.Quote(name)
	return quoted[1 : len(quoted)-1]
}
