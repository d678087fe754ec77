// Package testdoubles provides test doubles (spies, stubs, dummies) for
// domain interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"fmt"

	"github.com/bundleup/bundleup/domain"
)

// ---------------------------------------------------------------------------
// SpyReleaseSource
// ---------------------------------------------------------------------------

// SpyReleaseSource implements domain.ReleaseSource as a configurable spy.
// Configure Histories and Errors per gem, then inspect FetchedGems to verify
// which lookups the pipeline performed, in order.
type SpyReleaseSource struct {
	SourceName string

	// Histories maps gem name to the release list to return.
	Histories map[string][]domain.Release

	// Errors maps gem name to the error to return instead of a history.
	Errors map[string]error

	// FetchedGems records every Releases call, in order.
	FetchedGems []string
}

func (s *SpyReleaseSource) Name() string {
	if s.SourceName == "" {
		return "spy"
	}
	return s.SourceName
}

func (s *SpyReleaseSource) Releases(
	_ context.Context,
	gem string,
) ([]domain.Release, error) {
	s.FetchedGems = append(s.FetchedGems, gem)

	if err, ok := s.Errors[gem]; ok {
		return nil, err
	}
	if history, ok := s.Histories[gem]; ok {
		return history, nil
	}
	return nil, fmt.Errorf("no history configured for %q", gem)
}

// ---------------------------------------------------------------------------
// DummyReleaseSource
// ---------------------------------------------------------------------------

// DummyReleaseSource satisfies domain.ReleaseSource and fails every lookup.
// Use it where a source is required but must never be resolved against.
type DummyReleaseSource struct{}

func (d *DummyReleaseSource) Name() string { return "dummy" }

func (d *DummyReleaseSource) Releases(
	_ context.Context,
	gem string,
) ([]domain.Release, error) {
	return nil, fmt.Errorf("dummy source queried for %q", gem)
}
