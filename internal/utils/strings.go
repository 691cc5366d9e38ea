package utils

import "strings"

// FormatPaths renders a list of file paths as an indented bullet list,
// one path per line, ending with a newline.
func FormatPaths(paths []string) string {
	if len(paths) == 0 {
		return "\n"
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, p := range paths {
		b.WriteString("  - ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}
