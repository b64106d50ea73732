package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/gracechapel/site-api/internal/fetcher"
	"github.com/gracechapel/site-api/pkg/logger"
)

// DefaultBaseURL is the production YouTube Data API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// ProviderError reports an application-level error embedded in a 200-status
// payload. It is never retried.
type ProviderError struct {
	Source  string
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error from %s search: %d %s", e.Source, e.Code, e.Message)
}

// ErrMissingConfig indicates the client was asked to query without an API key
// or channel/playlist identifier.
var ErrMissingConfig = errors.New("youtube credentials not configured")

// Client issues channel search and playlist queries through the resilient
// fetcher. It is stateless; every call is one independent round trip.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Client struct {
	fetcher     *fetcher.Fetcher
	baseURL     string
	apiKey      string
	channelID   string
	playlistID  string
	maxUploads  int
	maxPastLive int
	maxPlaylist int
	logger      *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint. Test hook.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithClientLogger overrides the logger.
func WithClientLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a YouTube API client.
func NewClient(f *fetcher.Fetcher, apiKey, channelID, playlistID string, maxUploads, maxPastLive, maxPlaylist int, opts ...ClientOption) *Client {
	c := &Client{
		fetcher:     f,
		baseURL:     DefaultBaseURL,
		apiKey:      apiKey,
		channelID:   channelID,
		playlistID:  playlistID,
		maxUploads:  maxUploads,
		maxPastLive: maxPastLive,
		maxPlaylist: maxPlaylist,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		if logger.Log != nil {
			c.logger = logger.Log
		} else {
			c.logger = zap.NewNop()
		}
	}
	return c
}

// Configured reports whether the channel search path has credentials.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.channelID != ""
}

// PlaylistConfigured reports whether the curated playlist path has credentials.
func (c *Client) PlaylistConfigured() bool {
	return c.apiKey != "" && c.playlistID != ""
}

// searchURL builds a channel search URL. eventType may be empty for the plain
// uploads search.
func (c *Client) searchURL(eventType string, maxResults int) string {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", c.channelID)
	q.Set("type", "video")
	q.Set("order", "date")
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("key", c.apiKey)
	if eventType != "" {
		q.Set("eventType", eventType)
	}
	return c.baseURL + "/search?" + q.Encode()
}

func (c *Client) playlistURL() string {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("playlistId", c.playlistID)
	q.Set("maxResults", strconv.Itoa(c.maxPlaylist))
	q.Set("key", c.apiKey)
	return c.baseURL + "/playlistItems?" + q.Encode()
}

// query performs one fetch and returns the decoded payload, leaving embedded
// provider errors for the caller to interpret.
func (c *Client) query(ctx context.Context, u string) (*searchResponse, error) {
	var resp searchResponse
	if err := c.fetcher.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaylistItems fetches the curated playlist. An absent items field is an
// empty playlist, not an error.
func (c *Client) PlaylistItems(ctx context.Context) ([]Item, error) {
	if !c.PlaylistConfigured() {
		return nil, ErrMissingConfig
	}

	resp, err := c.query(ctx, c.playlistURL())
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &ProviderError{Source: "playlist", Code: resp.Error.Code, Message: resp.Error.Message}
	}

	c.logger.Debug("playlist fetched", zap.Int("items", len(resp.Items)))
	return toItems(resp.Items), nil
}
