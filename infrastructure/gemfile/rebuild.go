package gemfile

import (
	"regexp"
	"strings"
)

// Rebuild rewrites a declaration line to pin the gem at `~> target`,
// replacing only the version-constraint token. Leading whitespace, the
// name's original quote style, and everything that followed the constraint
// (trailing options, comments) are preserved byte for byte. The name is
// quoted as a literal before being used to locate the trailing-text boundary,
// so gems with regex-special characters are handled.
func Rebuild(line, name, target string) string {
	namePattern := regexp.MustCompile(
		`gem\s+(["'])` + regexp.QuoteMeta(name) + `["']`,
	)
	loc := namePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}

	quote := string(line[loc[2]])
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

	rest := line[loc[1]:]
	if cloc := constraintPattern.FindStringIndex(rest); cloc != nil {
		rest = rest[:cloc[0]] + rest[cloc[1]:]
	}

	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString("gem ")
	sb.WriteString(quote)
	sb.WriteString(name)
	sb.WriteString(quote)
	sb.WriteString(", ")
	sb.WriteString(quote)
	sb.WriteString("~> ")
	sb.WriteString(target)
	sb.WriteString(quote)
	sb.WriteString(rest)
	return sb.String()
}
