// Package youtube integrates with the YouTube Data API v3 over its REST
// endpoints: live/completed/upload search for the channel feed and
// playlistItems for the curated sermon playlist.
package youtube

import "time"

// Item is one video as reported by the provider, reduced to the fields the
// feed needs.
type Item struct {
	ID           string
	Title        string
	PublishedAt  time.Time
	ThumbnailURL string
}

// ChannelFeed carries the three raw result lists of one aggregation cycle.
// Priority between them is the resolver's concern, not this package's.
type ChannelFeed struct {
	Live     []Item
	PastLive []Item
	Uploads  []Item
}

// Wire types below mirror the provider's JSON payloads.

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

type snippet struct {
	PublishedAt string     `json:"publishedAt"`
	Title       string     `json:"title"`
	Thumbnails  thumbnails `json:"thumbnails"`
	ResourceID  *struct {
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet snippet `json:"snippet"`
}

// searchResponse is shared by search and playlistItems responses; a 200 status
// can still carry an embedded error object.
type searchResponse struct {
	Error *apiError    `json:"error"`
	Items []searchItem `json:"items"`
}

// bestThumbnail prefers the high rendition, falling back through medium to
// default.
func (t thumbnails) bestThumbnail() string {
	switch {
	case t.High != nil:
		return t.High.URL
	case t.Medium != nil:
		return t.Medium.URL
	case t.Default != nil:
		return t.Default.URL
	default:
		return ""
	}
}

func (s searchItem) toItem() Item {
	id := s.ID.VideoID
	if id == "" && s.Snippet.ResourceID != nil {
		id = s.Snippet.ResourceID.VideoID
	}

	published, err := time.Parse(time.RFC3339, s.Snippet.PublishedAt)
	if err != nil {
		published = time.Time{}
	}

	return Item{
		ID:           id,
		Title:        s.Snippet.Title,
		PublishedAt:  published,
		ThumbnailURL: s.Snippet.Thumbnails.bestThumbnail(),
	}
}

func toItems(raw []searchItem) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		item := r.toItem()
		if item.ID == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
