package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SampleSource produces raw text samples for a seed user. The model has
// no network awareness; anything that can hand back a slice of strings
// can drive training.
type SampleSource interface {
	Samples(ctx context.Context, seed string, count int) ([]string, error)
}

// TimelineClient fetches a user's recent posts over HTTP. The bearer
// token is read from the TWITTER_BEARER_TOKEN environment variable
// (loaded from .env at startup if present).
type TimelineClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// NewTimelineClient creates a client against the given API base URL.
func NewTimelineClient(baseURL string, logger *slog.Logger) *TimelineClient {
	return &TimelineClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   os.Getenv("TWITTER_BEARER_TOKEN"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type timelinePost struct {
	Text string `json:"text"`
}

// Samples fetches up to count posts from the seed user's timeline and
// returns their raw text.
func (c *TimelineClient) Samples(ctx context.Context, seed string, count int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/users/%s/tweets?count=%d", c.baseURL, url.PathEscape(seed), count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build timeline request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timeline request for %q failed: %w", seed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timeline request for %q returned status %d", seed, resp.StatusCode)
	}

	var posts []timelinePost
	if err = json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("could not decode timeline for %q: %w", seed, err)
	}

	samples := make([]string, 0, len(posts))
	for _, post := range posts {
		samples = append(samples, post.Text)
	}

	c.logger.Debug("timeline fetched",
		slog.String("seed_name", seed),
		slog.Int("samples", len(samples)),
	)
	return samples, nil
}
