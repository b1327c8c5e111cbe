package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/jobhunterpro/jobhunter/internal/stats"
)

const dateFormat = "2006-01-02"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Increment bumps one counter for the date, creating the row on first use.
// The counter name is validated against the known set before it is spliced
// into the statement.
func (r *Repository) Increment(ctx context.Context, date time.Time, c domain.Counter, delta int) error {
	if !c.Valid() {
		return fmt.Errorf("unknown stats counter: %s", c)
	}

	query := fmt.Sprintf(`INSERT INTO daily_stats (date, %[1]s) VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET %[1]s = %[1]s + excluded.%[1]s`, string(c))

	if _, err := r.db.ExecContext(ctx, query, date.UTC().Format(dateFormat), delta); err != nil {
		return fmt.Errorf("increment %s: %w", c, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	const query = `SELECT id, date, jobs_found, jobs_applied,
		interviews_scheduled, rejections_received, offers_received, created_at
		FROM daily_stats WHERE date = ?`

	s, err := scanStats(r.db.QueryRowContext(ctx, query, date.UTC().Format(dateFormat)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily stats: %w", err)
	}
	return s, nil
}

func (r *Repository) Range(ctx context.Context, from, to time.Time) ([]domain.DailyStats, error) {
	const query = `SELECT id, date, jobs_found, jobs_applied,
		interviews_scheduled, rejections_received, offers_received, created_at
		FROM daily_stats WHERE date >= ? AND date <= ?
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query,
		from.UTC().Format(dateFormat), to.UTC().Format(dateFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("range daily stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.DailyStats
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily stats: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(row scanner) (*domain.DailyStats, error) {
	s := &domain.DailyStats{}
	var dateStr, createdStr string

	err := row.Scan(
		&s.ID, &dateStr, &s.JobsFound, &s.JobsApplied,
		&s.InterviewsScheduled, &s.RejectionsReceived, &s.OffersReceived, &createdStr,
	)
	if err != nil {
		return nil, err
	}

	s.Date, _ = time.Parse(dateFormat, dateStr)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return s, nil
}
