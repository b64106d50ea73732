// Package feed turns the raw provider result lists into the single ordered
// video sequence the site renders, falling back to a static dataset when no
// real data is reachable.
package feed

import "time"

// Kind tags how a video entered the feed.
type Kind string

// Kind values.
const (
	KindLive      Kind = "live"
	KindBroadcast Kind = "broadcast"
	KindUpload    Kind = "upload"
)

// Provenance distinguishes real provider data from the fallback dataset.
type Provenance string

// Provenance values.
const (
	ProvenanceReal Provenance = "real"
	ProvenanceMock Provenance = "mock"
)

// VideoRecord is the unified output unit. Records are never mutated after
// creation, only filtered and reordered.
type VideoRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Kind         Kind      `json:"kind"`
}

// Resolution is the final answer of one resolution cycle. Each resolution is
// independently computed; liveness is never cached across cycles.
type Resolution struct {
	Videos     []VideoRecord `json:"videos"`
	IsLive     bool          `json:"isLive"`
	Provenance Provenance    `json:"source"`
}
