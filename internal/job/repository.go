package job

import "context"

// ListFilter narrows and orders List results. Zero values mean "no filter".
type ListFilter struct {
	Status Status
	Source string
	Sort   string // "relevance" (default), "date" or "company"
}

type Repository interface {
	// Create inserts a new job. Returns an apperror with code Conflict when
	// a job with the same fingerprint already exists.
	Create(ctx context.Context, j *Job) error
	Get(ctx context.Context, id int64) (*Job, error)
	// Exists reports whether a job with the given fingerprint is known.
	Exists(ctx context.Context, jobID string) (bool, error)
	List(ctx context.Context, f ListFilter) ([]Job, error)
	// ListByStatus returns jobs ordered by relevance score descending,
	// insertion order on ties.
	ListByStatus(ctx context.Context, status Status) ([]Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
	CountHighRelevance(ctx context.Context, threshold int) (int, error)
}

type ApplicationRepository interface {
	// Upsert creates the application for a job, or replaces the cover letter
	// and email flag if one already exists.
	Upsert(ctx context.Context, a *Application) error
	// GetByJobID returns nil, nil when the job has no application.
	GetByJobID(ctx context.Context, jobID int64) (*Application, error)
}
