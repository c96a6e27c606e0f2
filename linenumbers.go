package pith

import (
	"regexp"
	"strconv"
	"strings"
)

// lineNumberRE matches a "1. " or "2: " style prefix: captured leading
// whitespace, the number, a dot or colon separator, one space, remainder.
var lineNumberRE = regexp.MustCompile(`^(\s*)(\d+)[.:]\s(.*)$`)

// StripLineNumbers removes leading line-number prefixes from code text
// when the numbering is clearly an artifact of a copied sample.
//
// Three conditions gate the rewrite, and all must hold: at least two lines
// carry the prefix, prefixed lines make up at least half of all lines, and
// the captured numbers are strictly consecutive in order of appearance.
// Anything less returns the text unchanged, which keeps enumerated
// comments and numeric expressions like "1. + x" intact. The function is
// idempotent: stripped text no longer satisfies the gates.
func StripLineNumbers(text string) string {
	lines := strings.Split(text, "\n")

	type numbered struct {
		index  int
		indent string
		rest   string
		n      int
	}

	var matches []numbered
	for i, line := range lines {
		m := lineNumberRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		matches = append(matches, numbered{index: i, indent: m[1], rest: m[3], n: n})
	}

	if len(matches) < 2 {
		return text
	}
	if len(matches)*2 < len(lines) {
		return text
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].n != matches[i-1].n+1 {
			return text
		}
	}

	for _, m := range matches {
		lines[m.index] = m.indent + m.rest
	}
	return strings.Join(lines, "\n")
}
