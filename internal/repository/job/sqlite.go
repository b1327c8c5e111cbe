package job

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jobhunterpro/jobhunter/internal/apperror"
	domain "github.com/jobhunterpro/jobhunter/internal/job"
)

const jobColumns = `id, job_id, title, company, location, url, description,
	source, salary, job_type, status, relevance_score,
	posted_date, found_date, applied_date`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, j *domain.Job) error {
	const query = `INSERT INTO jobs (job_id, title, company, location, url, description,
		source, salary, job_type, status, relevance_score, posted_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if j.Status == "" {
		j.Status = domain.StatusFound
	}

	res, err := r.db.ExecContext(ctx, query,
		j.JobID, j.Title, j.Company, j.Location, j.URL, j.Description,
		j.Source, j.Salary, j.JobType, string(j.Status), j.RelevanceScore,
		nullTime(j.PostedDate),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.New(apperror.Conflict, "job already exists")
		}
		return fmt.Errorf("create job: %w", err)
	}

	j.ID, _ = res.LastInsertId()
	j.FoundDate = time.Now().UTC()
	return nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperror.New(apperror.NotFound, "job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (r *Repository) Exists(ctx context.Context, jobID string) (bool, error) {
	const query = `SELECT 1 FROM jobs WHERE job_id = ? LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check job exists: %w", err)
	}
	return true, nil
}

func (r *Repository) List(ctx context.Context, f domain.ListFilter) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`

	var args []any
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}
	if f.Source != "" {
		query += " AND source = ?"
		args = append(args, f.Source)
	}

	switch f.Sort {
	case "date":
		query += " ORDER BY found_date DESC, id DESC"
	case "company":
		query += " ORDER BY company COLLATE NOCASE ASC, id ASC"
	default:
		query += " ORDER BY relevance_score DESC, id ASC"
	}

	return r.queryJobs(ctx, query, args...)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = ?
		ORDER BY relevance_score DESC, id ASC`

	return r.queryJobs(ctx, query, string(status))
}

func (r *Repository) Update(ctx context.Context, j *domain.Job) error {
	const query = `UPDATE jobs SET title = ?, company = ?, location = ?, url = ?,
		description = ?, source = ?, salary = ?, job_type = ?,
		status = ?, relevance_score = ?, applied_date = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		j.Title, j.Company, j.Location, j.URL,
		j.Description, j.Source, j.Salary, j.JobType,
		string(j.Status), j.RelevanceScore, nullTime(j.AppliedDate),
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.New(apperror.NotFound, "job not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.New(apperror.NotFound, "job not found")
	}
	return nil
}

func (r *Repository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	const query = `SELECT status, COUNT(*) FROM jobs GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *Repository) CountHighRelevance(ctx context.Context, threshold int) (int, error) {
	const query = `SELECT COUNT(*) FROM jobs WHERE relevance_score >= ?`

	var n int
	if err := r.db.QueryRowContext(ctx, query, threshold).Scan(&n); err != nil {
		return 0, fmt.Errorf("count high relevance jobs: %w", err)
	}
	return n, nil
}

func (r *Repository) queryJobs(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*domain.Job, error) {
	j := &domain.Job{}
	var status, foundStr string
	var postedStr, appliedStr sql.NullString

	err := row.Scan(
		&j.ID, &j.JobID, &j.Title, &j.Company, &j.Location, &j.URL, &j.Description,
		&j.Source, &j.Salary, &j.JobType, &status, &j.RelevanceScore,
		&postedStr, &foundStr, &appliedStr,
	)
	if err != nil {
		return nil, err
	}

	j.Status = domain.Status(status)
	j.FoundDate, _ = time.Parse(time.RFC3339, foundStr)
	if postedStr.Valid {
		j.PostedDate, _ = time.Parse(time.RFC3339, postedStr.String)
	}
	if appliedStr.Valid {
		j.AppliedDate, _ = time.Parse(time.RFC3339, appliedStr.String)
	}
	return j, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
