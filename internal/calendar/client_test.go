package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracechapel/site-api/internal/fetcher"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	f := fetcher.New(2, fetcher.Backoff{Base: time.Millisecond, Max: time.Millisecond}, 0)
	fixed := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	return NewClient(f, "test-key", "events@gracechapel.org", 60, 20,
		WithBaseURL(server.URL),
		WithNow(func() time.Time { return fixed }),
	)
}

func TestUpcomingEventsMapsTimedAndAllDay(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"items":[
			{"id":"ev1","summary":"Easter Service","location":"Main Hall","start":{"dateTime":"2024-03-31T10:00:00Z"},"end":{"dateTime":"2024-03-31T11:30:00Z"}},
			{"id":"ev2","summary":"Food Drive","start":{"date":"2024-04-06"},"end":{"date":"2024-04-07"}}
		]}`)) //nolint:errcheck
	})

	events, err := client.UpcomingEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Easter Service", events[0].Summary)
	assert.Equal(t, "2024-03-31T10:00:00Z", events[0].Start)
	assert.False(t, events[0].AllDay)

	assert.Equal(t, "2024-04-06", events[1].Start)
	assert.True(t, events[1].AllDay)

	assert.Equal(t, "2024-03-01T08:00:00Z", gotQuery["timeMin"][0])
	assert.Equal(t, "2024-04-30T08:00:00Z", gotQuery["timeMax"][0])
	assert.Equal(t, "startTime", gotQuery["orderBy"][0])
}

func TestUpcomingEventsAbsentItemsIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"kind":"calendar#events"}`)) //nolint:errcheck
	})

	events, err := client.UpcomingEvents(context.Background())

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUpcomingEventsEmbeddedError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":404,"message":"calendar not found"}}`)) //nolint:errcheck
	})

	_, err := client.UpcomingEvents(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar not found")
}

func TestUpcomingEventsTransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.UpcomingEvents(context.Background())

	require.ErrorIs(t, err, fetcher.ErrFetchExhausted)
}

func TestUpcomingEventsNotConfigured(t *testing.T) {
	f := fetcher.New(1, fetcher.Backoff{Base: time.Millisecond, Max: time.Millisecond}, 0)
	client := NewClient(f, "", "", 60, 20)

	_, err := client.UpcomingEvents(context.Background())

	require.ErrorIs(t, err, ErrMissingConfig)
}
