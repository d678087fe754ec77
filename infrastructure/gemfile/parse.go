// Package gemfile implements the line-level Gemfile pipeline: classifying a
// raw line, extracting the declared gem, and rebuilding the line with a new
// version constraint while preserving the original formatting.
package gemfile

import (
	"regexp"
	"strings"

	"github.com/bundleup/bundleup/domain"
)

// DefaultFilename is the conventional manifest name in the working directory.
const DefaultFilename = "Gemfile"

var (
	// declPattern anchors on the gem keyword after leading whitespace, so a
	// comment marker anywhere before the keyword disqualifies the line.
	declPattern = regexp.MustCompile(`^\s*gem\s+(["'])([^"']+)["']`)

	// constraintPattern locates the quoted constraint token that follows a
	// comma after the name token.
	constraintPattern = regexp.MustCompile(`,\s*(["'])([^"']*)["']`)

	operatorPattern = regexp.MustCompile(`^(~>|>=|<=|=|<|>)\s*`)
	versionPattern  = regexp.MustCompile(`\d+(?:\.\d+){1,3}`)
)

// altSourceMarkers flag gems sourced outside the default registry: a git
// repository, a filesystem path, or an explicit source override. Matched as
// substrings anywhere on the line, covering both `git:` and `:git =>` syntax.
var altSourceMarkers = []string{
	"git:", ":git",
	"github:", ":github",
	"path:", ":path",
	"source:", ":source",
}

// Parse classifies one raw Gemfile line. It returns nil when the line does
// not declare a gem (blank, comment, unrelated directive, or a declaration
// that is itself commented out). Pure function of the line text.
func Parse(line string, lineNo int) *domain.Declaration {
	loc := declPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil
	}

	decl := &domain.Declaration{
		Name:         line[loc[4]:loc[5]],
		Quote:        line[loc[2]],
		LineNo:       lineNo,
		HasAltSource: hasAltSource(line),
	}

	rest := line[loc[1]:]
	if cm := constraintPattern.FindStringSubmatch(rest); cm != nil {
		token := strings.TrimSpace(cm[2])
		decl.ConstraintRaw = token
		numeric := operatorPattern.ReplaceAllString(token, "")
		if numeric != "" && versionPattern.FindString(numeric) == numeric {
			decl.CurrentVersion = numeric
		}
	}

	return decl
}

func hasAltSource(line string) bool {
	for _, marker := range altSourceMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
