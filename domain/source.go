package domain

import "context"

// ReleaseSource abstracts the package registry that publishes release
// histories for gems (RubyGems, a private mirror, etc.).
// Implementations handle transport, authentication, and response decoding.
type ReleaseSource interface {
	// Name returns the source identifier (e.g. "rubygems").
	Name() string

	// Releases returns the published releases for a gem, newest first.
	// Callers must treat any error — transport failure, timeout, non-success
	// status, malformed body — as "no usable history" and never differentiate
	// causes in their decision logic.
	Releases(ctx context.Context, gem string) ([]Release, error)
}
