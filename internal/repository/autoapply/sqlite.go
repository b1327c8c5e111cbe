package autoapply

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/jobhunterpro/jobhunter/internal/autoapply"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `id, enabled, job_titles, locations, job_types,
	max_applications_per_day, auto_apply_time, total_auto_applied,
	last_run, created_at, updated_at`

func (r *SettingsRepository) GetActive(ctx context.Context) (*domain.Settings, error) {
	s, err := r.Get(ctx)
	if err != nil || s == nil || !s.Enabled {
		return nil, err
	}
	return s, nil
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM auto_apply_settings ORDER BY id LIMIT 1`

	s := &domain.Settings{}
	var lastRunStr sql.NullString
	var createdStr, updatedStr string

	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.Enabled, &s.JobTitles, &s.Locations, &s.JobTypes,
		&s.MaxApplicationsPerDay, &s.AutoApplyTime, &s.TotalAutoApplied,
		&lastRunStr, &createdStr, &updatedStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get auto-apply settings: %w", err)
	}

	if lastRunStr.Valid {
		s.LastRun, _ = time.Parse(time.RFC3339, lastRunStr.String)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return s, nil
}

// Save upserts the singleton row. The first save inserts; later saves
// update in place.
func (r *SettingsRepository) Save(ctx context.Context, s *domain.Settings) error {
	if s.ID == 0 {
		const query = `INSERT INTO auto_apply_settings
			(enabled, job_titles, locations, job_types,
			 max_applications_per_day, auto_apply_time, total_auto_applied, last_run)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		res, err := r.db.ExecContext(ctx, query,
			s.Enabled, s.JobTitles, s.Locations, s.JobTypes,
			s.MaxApplicationsPerDay, s.AutoApplyTime, s.TotalAutoApplied,
			nullTime(s.LastRun),
		)
		if err != nil {
			return fmt.Errorf("insert auto-apply settings: %w", err)
		}
		s.ID, _ = res.LastInsertId()
		return nil
	}

	const query = `UPDATE auto_apply_settings SET
		enabled = ?, job_titles = ?, locations = ?, job_types = ?,
		max_applications_per_day = ?, auto_apply_time = ?, total_auto_applied = ?,
		last_run = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		s.Enabled, s.JobTitles, s.Locations, s.JobTypes,
		s.MaxApplicationsPerDay, s.AutoApplyTime, s.TotalAutoApplied,
		nullTime(s.LastRun), s.ID,
	)
	if err != nil {
		return fmt.Errorf("update auto-apply settings: %w", err)
	}
	return nil
}

type LogRepository struct {
	db *sql.DB
}

func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Append(ctx context.Context, l *domain.Log) error {
	const query = `INSERT INTO auto_apply_logs
		(job_id, action, reason, recruiter_email, email_sent, notification_sent)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		l.JobID, l.Action, l.Reason, l.RecruiterEmail, l.EmailSent, l.NotificationSent,
	)
	if err != nil {
		return fmt.Errorf("append auto-apply log: %w", err)
	}
	l.ID, _ = res.LastInsertId()
	l.CreatedAt = time.Now().UTC()
	return nil
}

func (r *LogRepository) List(ctx context.Context, jobID int64, limit int) ([]domain.Log, error) {
	query := `SELECT id, job_id, action, reason, recruiter_email,
		email_sent, notification_sent, created_at
		FROM auto_apply_logs`

	var args []any
	if jobID != 0 {
		query += " WHERE job_id = ?"
		args = append(args, jobID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auto-apply logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []domain.Log
	for rows.Next() {
		var l domain.Log
		var createdStr string
		if err := rows.Scan(
			&l.ID, &l.JobID, &l.Action, &l.Reason, &l.RecruiterEmail,
			&l.EmailSent, &l.NotificationSent, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scan auto-apply log: %w", err)
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
