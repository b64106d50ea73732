// Package calendar fetches upcoming public events from the hosted calendar
// API. Unlike the sermons feed, failures here surface to the UI as an explicit
// error field next to an empty item list.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/gracechapel/site-api/internal/fetcher"
	"github.com/gracechapel/site-api/pkg/logger"
)

// DefaultBaseURL is the production calendar API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/calendar/v3"

// ErrMissingConfig indicates the calendar credentials are absent.
var ErrMissingConfig = errors.New("calendar credentials not configured")

// Event is one calendar entry reduced to what the site renders. All-day events
// carry a date only; timed events carry RFC3339 start/end.
type Event struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	AllDay      bool   `json:"allDay"`
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type rawEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
}

type eventsResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Items []rawEvent `json:"items"`
}

// Client queries the calendar events API through the resilient fetcher.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Client struct {
	fetcher    *fetcher.Fetcher
	baseURL    string
	apiKey     string
	calendarID string
	windowDays int
	maxResults int
	logger     *zap.Logger
	now        func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint. Test hook.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithNow overrides the clock. Test hook.
func WithNow(fn func() time.Time) ClientOption {
	return func(c *Client) { c.now = fn }
}

// NewClient creates a calendar API client.
func NewClient(f *fetcher.Fetcher, apiKey, calendarID string, windowDays, maxResults int, opts ...ClientOption) *Client {
	c := &Client{
		fetcher:    f,
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		calendarID: calendarID,
		windowDays: windowDays,
		maxResults: maxResults,
		now:        time.Now,
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

// Configured reports whether the calendar path has credentials.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.calendarID != ""
}

func (c *Client) eventsURL() string {
	now := c.now().UTC()
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("timeMin", now.Format(time.RFC3339))
	q.Set("timeMax", now.AddDate(0, 0, c.windowDays).Format(time.RFC3339))
	q.Set("maxResults", strconv.Itoa(c.maxResults))
	return c.baseURL + "/calendars/" + url.PathEscape(c.calendarID) + "/events?" + q.Encode()
}

// UpcomingEvents fetches events within the configured window, ordered by
// start time.
func (c *Client) UpcomingEvents(ctx context.Context) ([]Event, error) {
	if !c.Configured() {
		return nil, ErrMissingConfig
	}

	var resp eventsResponse
	if err := c.fetcher.GetJSON(ctx, c.eventsURL(), &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("calendar provider error: %d %s", resp.Error.Code, resp.Error.Message)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, raw := range resp.Items {
		events = append(events, toEvent(raw))
	}

	c.logger.Debug("calendar events fetched", zap.Int("events", len(events)))
	return events, nil
}

func toEvent(raw rawEvent) Event {
	ev := Event{
		ID:          raw.ID,
		Summary:     raw.Summary,
		Location:    raw.Location,
		Description: raw.Description,
	}
	if raw.Start.DateTime != "" {
		ev.Start = raw.Start.DateTime
		ev.End = raw.End.DateTime
	} else {
		ev.Start = raw.Start.Date
		ev.End = raw.End.Date
		ev.AllDay = true
	}
	return ev
}
