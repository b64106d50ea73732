package feed

import (
	"sort"

	"github.com/gracechapel/site-api/internal/youtube"
)

// Resolve applies the priority and dedup policy to the three raw result lists:
//
//  1. A live item, if any, heads the feed and sets isLive.
//  2. Otherwise the most recent past-live item is promoted as a broadcast.
//  3. The remainder is the uploads list, newest first, minus any id already
//     selected.
//
// Three empty lists resolve to an empty feed; a legitimately empty channel is
// not an outage.
func Resolve(cf *youtube.ChannelFeed) Resolution {
	res := Resolution{
		Videos:     []VideoRecord{},
		Provenance: ProvenanceReal,
	}

	seen := make(map[string]bool)

	switch {
	case len(cf.Live) > 0:
		live := newestFirst(cf.Live)[0]
		res.Videos = append(res.Videos, toRecord(live, KindLive))
		res.IsLive = true
		seen[live.ID] = true
	case len(cf.PastLive) > 0:
		latest := newestFirst(cf.PastLive)[0]
		res.Videos = append(res.Videos, toRecord(latest, KindBroadcast))
		seen[latest.ID] = true
	}

	for _, item := range newestFirst(cf.Uploads) {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		res.Videos = append(res.Videos, toRecord(item, KindUpload))
	}

	return res
}

// ResolvePlaylist orders the curated playlist the same way the upload tail is
// ordered. The playlist path never reports liveness.
func ResolvePlaylist(items []youtube.Item) Resolution {
	res := Resolution{
		Videos:     []VideoRecord{},
		Provenance: ProvenanceReal,
	}

	seen := make(map[string]bool)
	for _, item := range newestFirst(items) {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		res.Videos = append(res.Videos, toRecord(item, KindUpload))
	}

	return res
}

// newestFirst returns a copy sorted by publishedAt descending, ties broken by
// id ascending for determinism.
func newestFirst(items []youtube.Item) []youtube.Item {
	sorted := make([]youtube.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].PublishedAt.Equal(sorted[j].PublishedAt) {
			return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func toRecord(item youtube.Item, kind Kind) VideoRecord {
	return VideoRecord{
		ID:           item.ID,
		Title:        item.Title,
		PublishedAt:  item.PublishedAt,
		ThumbnailURL: item.ThumbnailURL,
		Kind:         kind,
	}
}
