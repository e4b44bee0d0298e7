package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/repository"
)

type submissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new PostgreSQL badge photo repository
func NewSubmissionRepository(db *sqlx.DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create inserts a badge photo and fills in its generated ID and upload time
func (r *submissionRepository) Create(ctx context.Context, photo *domain.BadgePhoto) error {
	query := `
		INSERT INTO badge_photos (
			tradeshow_id, filename, mime_type, image_data, contact_email,
			contact_name, submitted_by_rep, form_source
		) VALUES (
			:tradeshow_id, :filename, :mime_type, :image_data, :contact_email,
			:contact_name, :submitted_by_rep, :form_source
		)
		RETURNING id, uploaded_at`

	rows, err := r.db.NamedQueryContext(ctx, query, photo)
	if err != nil {
		return fmt.Errorf("failed to create badge photo: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&photo.ID, &photo.UploadedAt); err != nil {
			return fmt.Errorf("failed to scan badge photo id: %w", err)
		}
	}

	return rows.Err()
}

// GetPhoto retrieves a badge photo including its image bytes
func (r *submissionRepository) GetPhoto(ctx context.Context, id int64) (*domain.BadgePhoto, error) {
	query := `
		SELECT id, tradeshow_id, filename, mime_type, image_data, contact_email,
			   contact_name, uploaded_at, submitted_by_rep, form_source
		FROM badge_photos
		WHERE id = $1`

	var photo domain.BadgePhoto
	if err := r.db.GetContext(ctx, &photo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("badge photo %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get badge photo: %w", err)
	}

	return &photo, nil
}

// ListByTradeshow lists submission metadata for a tradeshow, newest first
func (r *submissionRepository) ListByTradeshow(ctx context.Context, tradeshowID int64) ([]domain.SubmissionSummary, error) {
	query := `
		SELECT id, tradeshow_id, filename, mime_type, contact_email, contact_name,
			   uploaded_at, submitted_by_rep, form_source
		FROM badge_photos
		WHERE tradeshow_id = $1
		ORDER BY uploaded_at DESC`

	submissions := []domain.SubmissionSummary{}
	if err := r.db.SelectContext(ctx, &submissions, query, tradeshowID); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return submissions, nil
}

// CountByFormSource aggregates submissions per capture funnel
func (r *submissionRepository) CountByFormSource(ctx context.Context) ([]domain.FormSourceCount, error) {
	query := `
		SELECT form_source, COUNT(*) AS count, MAX(uploaded_at) AS latest
		FROM badge_photos
		GROUP BY form_source
		ORDER BY form_source`

	counts := []domain.FormSourceCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	return counts, nil
}
