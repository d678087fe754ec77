// Package rubygems implements domain.ReleaseSource against the RubyGems
// versions API.
package rubygems

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bundleup/bundleup/domain"
)

const (
	sourceName = "rubygems"

	// DefaultBaseURL is the public RubyGems registry.
	DefaultBaseURL = "https://rubygems.org"

	defaultTimeout = 15 * time.Second
)

// Client fetches release histories from a RubyGems-compatible registry.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the given registry base URL. Empty arguments fall
// back to the public registry and the default timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return sourceName }

// gemVersion mirrors one entry of /api/v1/versions/{gem}.json.
type gemVersion struct {
	Number     string    `json:"number"`
	Prerelease bool      `json:"prerelease"`
	CreatedAt  time.Time `json:"created_at"`
}

// Releases fetches the published versions of a gem, newest first as returned
// by the registry. Any transport error, non-200 status, or undecodable body
// is reported as an error; the caller decides what a failure means.
func (c *Client) Releases(ctx context.Context, gem string) ([]domain.Release, error) {
	endpoint := fmt.Sprintf(
		"%s/api/v1/versions/%s.json", c.baseURL, url.PathEscape(gem),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", gem, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions for %q: %w", gem, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"unexpected status code %d for %q", resp.StatusCode, gem,
		)
	}

	var versions []gemVersion
	if decodeErr := json.NewDecoder(resp.Body).Decode(&versions); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode versions for %q: %w", gem, decodeErr)
	}

	releases := make([]domain.Release, 0, len(versions))
	for _, v := range versions {
		releases = append(releases, domain.Release{
			Version:    v.Number,
			Prerelease: v.Prerelease,
			CreatedAt:  v.CreatedAt,
		})
	}
	return releases, nil
}
