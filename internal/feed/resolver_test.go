package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracechapel/site-api/internal/youtube"
)

var now = time.Date(2024, time.March, 10, 11, 0, 0, 0, time.UTC)

func item(id string, age time.Duration) youtube.Item {
	return youtube.Item{
		ID:           id,
		Title:        "Video " + id,
		PublishedAt:  now.Add(-age),
		ThumbnailURL: "https://i.ytimg.com/" + id + ".jpg",
	}
}

func ids(records []VideoRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestResolveLivePrecedence(t *testing.T) {
	res := Resolve(&youtube.ChannelFeed{
		Live:    []youtube.Item{item("L1", 0)},
		Uploads: []youtube.Item{item("U1", 24 * time.Hour), item("U2", 48 * time.Hour)},
	})

	assert.Equal(t, []string{"L1", "U1", "U2"}, ids(res.Videos))
	assert.True(t, res.IsLive)
	assert.Equal(t, ProvenanceReal, res.Provenance)
	assert.Equal(t, KindLive, res.Videos[0].Kind)
	assert.Equal(t, KindUpload, res.Videos[1].Kind)
}

func TestResolvePastLivePromotion(t *testing.T) {
	// The promoted broadcast also sits in the uploads list and must not
	// appear twice.
	res := Resolve(&youtube.ChannelFeed{
		PastLive: []youtube.Item{item("B2", 72 * time.Hour), item("B1", 12 * time.Hour)},
		Uploads: []youtube.Item{
			item("B1", 12 * time.Hour),
			item("U1", 24 * time.Hour),
			item("U2", 48 * time.Hour),
		},
	})

	assert.Equal(t, []string{"B1", "U1", "U2"}, ids(res.Videos))
	assert.False(t, res.IsLive)
	assert.Equal(t, KindBroadcast, res.Videos[0].Kind)
}

func TestResolveLiveBeatsPastLive(t *testing.T) {
	res := Resolve(&youtube.ChannelFeed{
		Live:     []youtube.Item{item("L1", 0)},
		PastLive: []youtube.Item{item("B1", time.Hour)},
		Uploads:  []youtube.Item{item("U1", 2 * time.Hour)},
	})

	require.NotEmpty(t, res.Videos)
	assert.Equal(t, "L1", res.Videos[0].ID)
	assert.True(t, res.IsLive)
	// The past-live item is not promoted when a live item exists; it only
	// enters the feed through the uploads list, which it is not part of here.
	assert.Equal(t, []string{"L1", "U1"}, ids(res.Videos))
}

func TestResolveDedupInvariant(t *testing.T) {
	res := Resolve(&youtube.ChannelFeed{
		Live: []youtube.Item{item("L1", 0)},
		Uploads: []youtube.Item{
			item("L1", 0),
			item("U1", time.Hour),
			item("U1", time.Hour),
			item("U2", 2 * time.Hour),
		},
	})

	seen := map[string]bool{}
	for _, v := range res.Videos {
		assert.False(t, seen[v.ID], "id %s appears twice", v.ID)
		seen[v.ID] = true
	}
	assert.Equal(t, []string{"L1", "U1", "U2"}, ids(res.Videos))
}

func TestResolveOrderingInvariant(t *testing.T) {
	res := Resolve(&youtube.ChannelFeed{
		Uploads: []youtube.Item{
			item("U3", 72 * time.Hour),
			item("U1", 12 * time.Hour),
			item("U2", 48 * time.Hour),
		},
	})

	for i := 1; i < len(res.Videos); i++ {
		assert.False(t, res.Videos[i].PublishedAt.After(res.Videos[i-1].PublishedAt),
			"feed must be non-increasing in publishedAt")
	}
	assert.Equal(t, []string{"U1", "U2", "U3"}, ids(res.Videos))
}

func TestResolveTieBrokenByID(t *testing.T) {
	res := Resolve(&youtube.ChannelFeed{
		Uploads: []youtube.Item{
			item("U2", time.Hour),
			item("U1", time.Hour),
			item("U3", time.Hour),
		},
	})

	assert.Equal(t, []string{"U1", "U2", "U3"}, ids(res.Videos))
}

func TestResolveEmptyIsNotError(t *testing.T) {
	res := Resolve(&youtube.ChannelFeed{})

	assert.NotNil(t, res.Videos)
	assert.Empty(t, res.Videos)
	assert.False(t, res.IsLive)
	assert.Equal(t, ProvenanceReal, res.Provenance)
}

func TestResolveMultipleLiveItemsDeterministic(t *testing.T) {
	a := Resolve(&youtube.ChannelFeed{
		Live: []youtube.Item{item("L2", 0), item("L1", 0)},
	})
	b := Resolve(&youtube.ChannelFeed{
		Live: []youtube.Item{item("L1", 0), item("L2", 0)},
	})

	assert.Equal(t, ids(a.Videos), ids(b.Videos))
	assert.Equal(t, "L1", a.Videos[0].ID)
}

func TestResolvePlaylistOrdersAndDedups(t *testing.T) {
	res := ResolvePlaylist([]youtube.Item{
		item("P2", 48 * time.Hour),
		item("P1", 12 * time.Hour),
		item("P1", 12 * time.Hour),
	})

	assert.Equal(t, []string{"P1", "P2"}, ids(res.Videos))
	assert.False(t, res.IsLive)
	assert.Equal(t, ProvenanceReal, res.Provenance)
}

func TestMockVideosAreFixed(t *testing.T) {
	first := MockVideos()
	second := MockVideos()

	require.Len(t, first, 2)
	assert.Equal(t, "mock-video-1", first[0].ID)
	assert.Equal(t, "mock-video-2", first[1].ID)
	assert.Equal(t, first, second)

	for _, v := range first {
		assert.NotEmpty(t, v.ThumbnailURL, "mock data must guarantee a thumbnail")
	}
}
