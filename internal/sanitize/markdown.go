// Package sanitize strips markdown artifacts from model output before layout.
package sanitize

import (
	"regexp"
	"strings"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order; later rules rely on earlier ones, e.g. italic after bold.
var rules = []rule{
	{regexp.MustCompile("(?m)^[ \t]*```[^\n]*$"), ""},
	{regexp.MustCompile(`\[\d+\]`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`__([^_]+)__`), "$1"},
	{regexp.MustCompile(`(^|[^*])\*([^*\n]+)\*([^*]|$)`), "$1$2$3"},
	{regexp.MustCompile(`(^|[^_])_([^_\n]+)_([^_]|$)`), "$1$2$3"},
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`(?m)^\d+\.\s+`), ""},
	{regexp.MustCompile(`(?m)^[-*+]\s+`), ""},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`\s*\|\s*`), " "},
	{regexp.MustCompile(`(?m)^[-=]{3,}$`), ""},
	{regexp.MustCompile(`(?m)^>\s+`), ""},
	{regexp.MustCompile(`[ \t]+`), " "},
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Clean removes markdown syntax (reference markers, links, emphasis, headings,
// list markers, code fences, inline code, table pipes, rules and quotes) and
// normalizes whitespace. Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	// A pass never grows the text, and a pass that keeps the length only
	// turns pipes or tabs into spaces, so iterating reaches a fixed point.
	for {
		next := pass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func pass(text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
