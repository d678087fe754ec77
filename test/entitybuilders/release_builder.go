// Package entitybuilders provides fluent builders for domain entities used
// across the test suites.
package entitybuilders

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/bundleup/bundleup/domain"
)

// ReleaseBuilder helps create test releases with a fluent interface.
type ReleaseBuilder struct {
	*testkit.BaseBuilder
	version    string
	prerelease bool
	createdAt  time.Time
}

// NewReleaseBuilder creates a new release builder with sensible defaults.
func NewReleaseBuilder() *ReleaseBuilder {
	return &ReleaseBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		version:     "1.0.0",
		prerelease:  false,
		createdAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithVersion sets the version number.
func (b *ReleaseBuilder) WithVersion(version string) *ReleaseBuilder {
	b.version = version
	return b
}

// AsPrerelease marks the release as a prerelease.
func (b *ReleaseBuilder) AsPrerelease() *ReleaseBuilder {
	b.prerelease = true
	return b
}

// WithCreatedAt sets the publication timestamp.
func (b *ReleaseBuilder) WithCreatedAt(createdAt time.Time) *ReleaseBuilder {
	b.createdAt = createdAt
	return b
}

// WithAge sets the publication timestamp relative to now.
func (b *ReleaseBuilder) WithAge(age time.Duration) *ReleaseBuilder {
	b.createdAt = time.Now().Add(-age)
	return b
}

// Build creates the release (satisfies testkit.Builder interface).
func (b *ReleaseBuilder) Build() interface{} {
	return b.BuildRelease()
}

// BuildRelease creates the release with a concrete return type.
func (b *ReleaseBuilder) BuildRelease() domain.Release {
	return domain.Release{
		Version:    b.version,
		Prerelease: b.prerelease,
		CreatedAt:  b.createdAt,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ReleaseBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.version = "1.0.0"
	b.prerelease = false
	b.createdAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return b
}

// Clone creates a deep copy of the ReleaseBuilder.
func (b *ReleaseBuilder) Clone() testkit.Builder {
	return &ReleaseBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		version:     b.version,
		prerelease:  b.prerelease,
		createdAt:   b.createdAt,
	}
}
