// Package models contains the data models and DTOs for the site API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is one entry on the public announcements board.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Announcement struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateAnnouncementDTO is the request body for creating an announcement.
type CreateAnnouncementDTO struct {
	Title     string `json:"title" binding:"required,max=200"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}

// ErrorResponse is the JSON error envelope returned by all handlers.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// CalendarResponse is the envelope for the calendar endpoint. Failures are
// reported in-band: Error is non-empty and Items is an empty array, with HTTP
// status 200.
type CalendarResponse struct {
	Items interface{} `json:"items"`
	Error string      `json:"error"`
}
