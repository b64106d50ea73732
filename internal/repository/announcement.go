// Package repository provides database operations for the site API.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gracechapel/site-api/internal/models"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("not found")

// AnnouncementRepository defines the persistence operations used by the
// announcement handlers.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	ListPublished(ctx context.Context, limit int) ([]models.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresAnnouncementRepository implements AnnouncementRepository on a
// pgx connection pool.
type PostgresAnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a repository backed by the given pool.
func NewAnnouncementRepository(db *pgxpool.Pool) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{db: db}
}

// Create inserts a new announcement. The id and timestamps are assigned here.
func (r *PostgresAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	a.ID = uuid.New()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Published && a.PublishedAt == nil {
		a.PublishedAt = &now
	}

	query := `
		INSERT INTO site.announcements
		(id, title, body, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Title, a.Body, a.Published, a.PublishedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// ListPublished returns published announcements, newest first.
func (r *PostgresAnnouncementRepository) ListPublished(ctx context.Context, limit int) ([]models.Announcement, error) {
	query := `
		SELECT id, title, body, published, published_at, created_at, updated_at
		FROM site.announcements
		WHERE published = TRUE
		ORDER BY published_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Body, &a.Published, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// Delete removes an announcement by id.
func (r *PostgresAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM site.announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
