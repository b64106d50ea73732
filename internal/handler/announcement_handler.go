package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gracechapel/site-api/internal/models"
	"github.com/gracechapel/site-api/internal/repository"
	"github.com/gracechapel/site-api/pkg/logger"
)

const (
	defaultAnnouncementLimit = 20
	maxAnnouncementLimit     = 100
)

// AnnouncementHandler serves the announcements board: a public listing plus
// API-key gated mutations.
type AnnouncementHandler struct {
	repo repository.AnnouncementRepository
}

// NewAnnouncementHandler creates an AnnouncementHandler.
func NewAnnouncementHandler(repo repository.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{repo: repo}
}

// HandleList returns published announcements, newest first.
func (h *AnnouncementHandler) HandleList(c *gin.Context) {
	limit := parseLimit(c, defaultAnnouncementLimit, maxAnnouncementLimit)

	announcements, err := h.repo.ListPublished(c.Request.Context(), limit)
	if err != nil {
		logger.Log.Error("failed to list announcements", zap.Error(err))
		sendError(c, http.StatusInternalServerError, "Internal Server Error", "failed to list announcements")
		return
	}

	if announcements == nil {
		announcements = []models.Announcement{}
	}
	c.JSON(http.StatusOK, announcements)
}

// HandleCreate creates a new announcement.
func (h *AnnouncementHandler) HandleCreate(c *gin.Context) {
	var dto models.CreateAnnouncementDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		sendError(c, http.StatusBadRequest, "Bad Request", "invalid request payload: "+err.Error())
		return
	}

	announcement := &models.Announcement{
		Title:     dto.Title,
		Body:      dto.Body,
		Published: dto.Published,
	}

	if err := h.repo.Create(c.Request.Context(), announcement); err != nil {
		logger.Log.Error("failed to create announcement", zap.Error(err))
		sendError(c, http.StatusInternalServerError, "Internal Server Error", "failed to create announcement")
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// HandleDelete removes an announcement by id.
func (h *AnnouncementHandler) HandleDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Bad Request", "invalid announcement id")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			sendError(c, http.StatusNotFound, "Not Found", "announcement not found")
			return
		}
		logger.Log.Error("failed to delete announcement", zap.Error(err))
		sendError(c, http.StatusInternalServerError, "Internal Server Error", "failed to delete announcement")
		return
	}

	c.Status(http.StatusNoContent)
}

func parseLimit(c *gin.Context, def, max int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func sendError(c *gin.Context, status int, errText, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     errText,
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
