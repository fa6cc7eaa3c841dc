package ignore

import (
	"regexp"
	"strings"
)

const doubleStar = "**"

var singleStarPattern = regexp.MustCompile(`\*`)

// escapeSpecialChars escapes regex special characters except for '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	specialChars := `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// wildcardToRegex converts '*' and '?' wildcards to regex equivalents that never cross a '/'.
func wildcardToRegex(pattern string) string {
	pattern = singleStarPattern.ReplaceAllString(pattern, `[^/]*`)
	return strings.ReplaceAll(pattern, "?", `[^/]`)
}

func hasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

// namePatternRegex builds the regex applied to a single directory name.
// Plain text matches anywhere inside the name; globs must match the whole name.
func namePatternRegex(pattern string) string {
	if !hasWildcard(pattern) {
		return regexp.QuoteMeta(pattern)
	}
	return "^" + wildcardToRegex(escapeSpecialChars(pattern)) + "$"
}

// pathPatternRegex builds the regex applied to a slash-separated directory path.
// A leading '/' anchors the pattern to the root; otherwise it may start at any level.
// Descendants of a matching directory match as well.
func pathPatternRegex(pattern string) string {
	anchored := strings.HasPrefix(pattern, "/")
	segments := strings.Split(strings.Trim(pattern, "/"), "/")

	var builder strings.Builder
	if anchored {
		builder.WriteString("^")
	} else {
		builder.WriteString("^(.*/)?")
	}
	for i, segment := range segments {
		last := i == len(segments)-1
		if segment == doubleStar {
			if last {
				builder.WriteString(".*")
			} else {
				builder.WriteString("(.*/)?")
			}
			continue
		}
		builder.WriteString(wildcardToRegex(escapeSpecialChars(segment)))
		if !last {
			builder.WriteString("/")
		}
	}
	builder.WriteString("(/.*)?$")
	return builder.String()
}
