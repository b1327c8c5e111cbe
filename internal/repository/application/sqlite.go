package application

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/jobhunterpro/jobhunter/internal/job"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, a *domain.Application) error {
	// An empty incoming letter keeps the stored one, so a bare status
	// confirmation never wipes a prepared draft.
	const query = `INSERT INTO applications (job_id, cover_letter, email_sent, applied_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (job_id) DO UPDATE SET
			cover_letter = COALESCE(NULLIF(excluded.cover_letter, ''), cover_letter),
			email_sent = excluded.email_sent,
			updated_date = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`

	applied := a.AppliedDate
	if applied.IsZero() {
		applied = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, query,
		a.JobID, a.CoverLetter, a.EmailSent, applied.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert application: %w", err)
	}

	if id, _ := res.LastInsertId(); id != 0 {
		a.ID = id
	}
	return nil
}

func (r *Repository) GetByJobID(ctx context.Context, jobID int64) (*domain.Application, error) {
	const query = `SELECT id, job_id, cover_letter, email_sent,
		response_received, response_type, response_date, applied_date, updated_date
		FROM applications WHERE job_id = ?`

	a := &domain.Application{}
	var responseStr sql.NullString
	var appliedStr, updatedStr string

	err := r.db.QueryRowContext(ctx, query, jobID).Scan(
		&a.ID, &a.JobID, &a.CoverLetter, &a.EmailSent,
		&a.ResponseReceived, &a.ResponseType, &responseStr, &appliedStr, &updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	if responseStr.Valid {
		a.ResponseDate, _ = time.Parse(time.RFC3339, responseStr.String)
	}
	a.AppliedDate, _ = time.Parse(time.RFC3339, appliedStr)
	a.UpdatedDate, _ = time.Parse(time.RFC3339, updatedStr)
	return a, nil
}
