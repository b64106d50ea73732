// Package handler contains the gin HTTP handlers for the site API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracechapel/site-api/internal/feed"
)

// FeedResolver is the slice of the feed service the handlers need.
type FeedResolver interface {
	ResolveChannel(ctx context.Context) feed.Resolution
	ResolvePlaylist(ctx context.Context) feed.Resolution
}

// FeedHandler serves the sermons feed endpoints. Both endpoints always answer
// 200 with a renderable feed; outages degrade to the mock dataset with the
// source flag set for diagnostics.
type FeedHandler struct {
	service FeedResolver
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(service FeedResolver) *FeedHandler {
	return &FeedHandler{service: service}
}

// HandleChannelFeed resolves the live/past-live/uploads feed for the channel.
func (h *FeedHandler) HandleChannelFeed(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ResolveChannel(c.Request.Context()))
}

// HandlePlaylistFeed resolves the curated sermon playlist.
func (h *FeedHandler) HandlePlaylistFeed(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ResolvePlaylist(c.Request.Context()))
}
