package feed

import "time"

// mockPublished anchors the fallback dataset so mock feeds are byte-for-byte
// identical across cycles.
var mockPublished = time.Date(2024, time.January, 7, 10, 30, 0, 0, time.UTC)

// MockVideos returns the static fallback dataset served when no real data is
// reachable. The thumbnail is always present so consumers never see an empty
// thumbnailUrl.
func MockVideos() []VideoRecord {
	return []VideoRecord{
		{
			ID:           "mock-video-1",
			Title:        "Sunday Service",
			PublishedAt:  mockPublished,
			ThumbnailURL: "https://via.placeholder.com/480x360?text=Sunday+Service",
			Kind:         KindUpload,
		},
		{
			ID:           "mock-video-2",
			Title:        "Midweek Bible Study",
			PublishedAt:  mockPublished.AddDate(0, 0, -4),
			ThumbnailURL: "https://via.placeholder.com/480x360?text=Bible+Study",
			Kind:         KindUpload,
		},
	}
}

// MockResolution wraps the fallback dataset in a resolution envelope.
func MockResolution() Resolution {
	return Resolution{
		Videos:     MockVideos(),
		IsLive:     false,
		Provenance: ProvenanceMock,
	}
}
