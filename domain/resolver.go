package domain

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const hoursPerDay = 24

// DefaultStalenessDays is how old a new major line's first stable release
// must be before the resolver adopts it automatically.
const DefaultStalenessDays = 180

// Resolver decides the target version for a declaration from the gem's
// release history. Upgrades within the current major line are always taken;
// a jump to a newer major line is taken only once that line's first stable
// release has aged past the staleness threshold.
type Resolver struct {
	threshold time.Duration
	now       func() time.Time
}

// NewResolver creates a resolver with the given staleness threshold in days.
// Non-positive values fall back to the default.
func NewResolver(stalenessDays int) *Resolver {
	if stalenessDays <= 0 {
		stalenessDays = DefaultStalenessDays
	}
	return &Resolver{
		threshold: time.Duration(stalenessDays) * hoursPerDay * time.Hour,
		now:       time.Now,
	}
}

// NewResolverAt creates a resolver with a fixed clock, for tests.
func NewResolverAt(stalenessDays int, now func() time.Time) *Resolver {
	r := NewResolver(stalenessDays)
	r.now = now
	return r
}

// Resolve computes the target version for a declaration currently pinned to
// current (empty = unpinned). The result is a skip when the history holds no
// stable release. When a newer major line exists but is too young, the
// current constraint is kept as-is — no minor/patch lookup within the
// current major is performed.
func (r *Resolver) Resolve(current string, history []Release) Resolution {
	stable := stableReleases(history)
	if len(stable) == 0 {
		return Skipped(SkipNoStableReleases)
	}

	latest := stable[0]
	if current == "" {
		return Resolved(latest.Version)
	}

	latestMajor := MajorComponent(latest.Version)
	if MajorComponent(current) == latestMajor {
		return Resolved(latest.Version)
	}

	if r.now().Sub(majorIntroducedAt(stable, latestMajor)) >= r.threshold {
		return Resolved(latest.Version)
	}
	return Resolved(current)
}

// stableReleases filters out prereleases and re-sorts the remainder newest
// first. The registry promises newest-first ordering but is not trusted:
// versions are compared as semver where possible, falling back to the
// publication timestamp for 2- or 4-component numbers.
func stableReleases(history []Release) []Release {
	stable := make([]Release, 0, len(history))
	for _, rel := range history {
		if !rel.Prerelease {
			stable = append(stable, rel)
		}
	}

	sort.SliceStable(stable, func(i, j int) bool {
		vi := normalizeVersion(stable[i].Version)
		vj := normalizeVersion(stable[j].Version)
		if semver.IsValid(vi) && semver.IsValid(vj) {
			if cmp := semver.Compare(vi, vj); cmp != 0 {
				return cmp > 0
			}
		}
		return stable[i].CreatedAt.After(stable[j].CreatedAt)
	})
	return stable
}

// majorIntroducedAt returns the timestamp of the oldest stable release whose
// leading component equals major — the major line's first stable release date.
func majorIntroducedAt(stable []Release, major string) time.Time {
	var introduced time.Time
	for _, rel := range stable {
		if MajorComponent(rel.Version) != major {
			continue
		}
		if introduced.IsZero() || rel.CreatedAt.Before(introduced) {
			introduced = rel.CreatedAt
		}
	}
	return introduced
}

// MajorComponent returns the leading numeric component of a dotted version.
// Constraints shorter than the release numbers compare on this component only.
func MajorComponent(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if idx := strings.IndexByte(version, '.'); idx >= 0 {
		return version[:idx]
	}
	return version
}

func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
