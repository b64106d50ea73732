package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gracechapel/site-api/internal/middleware"
)

// RouterDeps carries the handlers and settings the router wires together.
// Announcements may be nil when no database is configured; the routes are then
// not registered.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RouterDeps struct {
	Feed          *FeedHandler
	Calendar      *CalendarHandler
	Announcements *AnnouncementHandler
	Health        *HealthHandler
	AllowedOrigin string
	AdminAPIKeys  []string
}

// NewRouter assembles the gin engine with the full middleware chain. CORS runs
// first so preflight requests never reach business logic.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.AllowedOrigin))
	router.Use(middleware.RequestLogger())

	api := router.Group("/api/v1")
	{
		api.GET("/sermons/feed", deps.Feed.HandleChannelFeed)
		api.GET("/sermons/playlist", deps.Feed.HandlePlaylistFeed)
		api.GET("/calendar/events", deps.Calendar.HandleUpcomingEvents)

		if deps.Announcements != nil {
			api.GET("/announcements", deps.Announcements.HandleList)

			admin := api.Group("", middleware.APIKeyAuth(deps.AdminAPIKeys))
			admin.POST("/announcements", deps.Announcements.HandleCreate)
			admin.DELETE("/announcements/:id", deps.Announcements.HandleDelete)
		}
	}

	router.GET("/health", deps.Health.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
