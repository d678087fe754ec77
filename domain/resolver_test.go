package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bundleup/bundleup/domain"
	"github.com/bundleup/bundleup/test/entitybuilders"
)

const day = 24 * time.Hour

// fixedNow keeps resolver decisions deterministic across the suite.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newResolver(stalenessDays int) *domain.Resolver {
	return domain.NewResolverAt(stalenessDays, func() time.Time { return fixedNow })
}

func release(version string, age time.Duration) domain.Release {
	return entitybuilders.NewReleaseBuilder().
		WithVersion(version).
		WithCreatedAt(fixedNow.Add(-age)).
		BuildRelease()
}

func prerelease(version string, age time.Duration) domain.Release {
	return entitybuilders.NewReleaseBuilder().
		WithVersion(version).
		WithCreatedAt(fixedNow.Add(-age)).
		AsPrerelease().
		BuildRelease()
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("should skip when history is empty", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := newResolver(180)

		// when
		res := resolver.Resolve("1.0.0", nil)

		// then
		assert.True(t, res.Skipped)
		assert.Equal(t, domain.SkipNoStableReleases, res.Reason)
	})

	t.Run("should skip when history holds only prereleases", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := newResolver(180)
		history := []domain.Release{
			prerelease("2.0.0.rc1", 5*day),
			prerelease("2.0.0.beta1", 30*day),
		}

		// when
		res := resolver.Resolve("1.0.0", history)

		// then
		assert.True(t, res.Skipped)
		assert.Equal(t, domain.SkipNoStableReleases, res.Reason)
	})

	t.Run("should adopt the latest stable when unpinned", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := newResolver(180)
		history := []domain.Release{
			prerelease("3.0.0.rc1", 2*day),
			release("2.9.1", 20*day),
			release("2.3.0", 400*day),
		}

		// when
		res := resolver.Resolve("", history)

		// then
		assert.False(t, res.Skipped)
		assert.Equal(t, "2.9.1", res.Version)
	})

	t.Run("should upgrade freely within the same major line", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := newResolver(180)
		history := []domain.Release{
			release("2.9.1", 10*day),
			release("2.3.0", 300*day),
		}

		// when
		res := resolver.Resolve("2.3.0", history)

		// then
		assert.False(t, res.Skipped)
		assert.Equal(t, "2.9.1", res.Version)
	})

	t.Run("should stay on the current major while the new one is young", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := newResolver(180)
		history := []domain.Release{
			release("3.0.0", 10*day),
			release("2.9.1", 60*day),
			release("2.3.0", 400*day),
		}

		// when
		res := resolver.Resolve("2.3.0", history)

		// then
		assert.False(t, res.Skipped)
		assert.Equal(t, "2.3.0", res.Version)
	})

	t.Run("should adopt a new major once its first release has matured", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := newResolver(180)
		history := []domain.Release{
			release("3.1.0", 20*day),
			release("3.0.0", 200*day),
			release("2.3.0", 500*day),
		}

		// when
		res := resolver.Resolve("2.3.0", history)

		// then
		assert.False(t, res.Skipped)
		assert.Equal(t, "3.1.0", res.Version)
	})

	t.Run("should gate on the oldest stable release of the new major", func(t *testing.T) {
		t.Parallel()

		// given: the 3.x line started 10 days ago even though a prerelease is older
		resolver := newResolver(180)
		history := []domain.Release{
			release("3.0.1", 2*day),
			release("3.0.0", 10*day),
			prerelease("3.0.0.beta1", 300*day),
			release("2.9.0", 90*day),
		}

		// when
		res := resolver.Resolve("2.9.0", history)

		// then
		assert.Equal(t, "2.9.0", res.Version)
	})

	t.Run("should compare short constraints on the major component only", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := newResolver(180)
		history := []domain.Release{
			release("2.9.1", 10*day),
			release("2.0.0", 700*day),
		}

		// when
		res := resolver.Resolve("2.3", history)

		// then
		assert.Equal(t, "2.9.1", res.Version)
	})

	t.Run("should honor a custom staleness threshold", func(t *testing.T) {
		t.Parallel()

		// given: 3.x is 10 days old, threshold lowered to 7 days
		resolver := newResolver(7)
		history := []domain.Release{
			release("3.0.0", 10*day),
			release("2.3.0", 300*day),
		}

		// when
		res := resolver.Resolve("2.3.0", history)

		// then
		assert.Equal(t, "3.0.0", res.Version)
	})

	t.Run("should not trust registry ordering", func(t *testing.T) {
		t.Parallel()

		// given: history arrives oldest first
		resolver := newResolver(180)
		history := []domain.Release{
			release("2.3.0", 400*day),
			release("2.7.0", 100*day),
			release("2.9.1", 10*day),
		}

		// when
		res := resolver.Resolve("2.3.0", history)

		// then
		assert.Equal(t, "2.9.1", res.Version)
	})
}

func TestMajorComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{
			name:     "should extract the major from a three-component version",
			version:  "2.3.0",
			expected: "2",
		},
		{
			name:     "should extract the major from a two-component version",
			version:  "10.4",
			expected: "10",
		},
		{
			name:     "should return a single component unchanged",
			version:  "3",
			expected: "3",
		},
		{
			name:     "should strip a v prefix",
			version:  "v1.2.3",
			expected: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			version := tt.version

			// when
			result := domain.MajorComponent(version)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}
