package domain

import "time"

// Declaration represents a gem declaration parsed from a single Gemfile line.
type Declaration struct {
	Name           string // Gem name as published on the registry
	ConstraintRaw  string // Original constraint token without quotes; empty when unpinned
	CurrentVersion string // Dotted-numeric version from the constraint; empty when unpinned or unparsable
	HasAltSource   bool   // True when the line references a git repo, local path, or source override
	Quote          byte   // Quote character used for the name token
	LineNo         int    // 1-based line number in the Gemfile
}

// Pinned reports whether the declaration carries a usable version constraint.
// A constraint that failed to parse cleanly leaves ConstraintRaw set but
// CurrentVersion empty, and is treated like an unpinned declaration.
func (d Declaration) Pinned() bool { return d.CurrentVersion != "" }

// Release is one published version of a gem, as reported by the registry.
type Release struct {
	Version    string // Dotted numeric version, 2-4 components
	Prerelease bool
	CreatedAt  time.Time
}

// SkipReason names why a declaration was left untouched.
type SkipReason string

const (
	SkipNoStableReleases SkipReason = "no stable releases"
	SkipFetchFailed      SkipReason = "release history unavailable"
	SkipAlternateSource  SkipReason = "alternate source"
)

// Resolution is the outcome of resolving one declaration: either a target
// version to rewrite toward, or a skip with its cause. Skips carry a reason
// for diagnostics only; the pipeline treats every skip identically.
type Resolution struct {
	Version string
	Skipped bool
	Reason  SkipReason
}

// Resolved builds a resolution that adopts the given version.
func Resolved(version string) Resolution {
	return Resolution{Version: version}
}

// Skipped builds a resolution that leaves the declaration untouched.
func Skipped(reason SkipReason) Resolution {
	return Resolution{Skipped: true, Reason: reason}
}
