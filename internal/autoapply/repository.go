package autoapply

import "context"

type SettingsRepository interface {
	// GetActive returns the enabled settings row, or nil, nil when
	// auto-apply is disabled or unconfigured.
	GetActive(ctx context.Context) (*Settings, error)
	// Get returns the settings row regardless of the enabled flag,
	// or nil, nil when none exists.
	Get(ctx context.Context) (*Settings, error)
	// Save upserts the singleton settings row.
	Save(ctx context.Context, s *Settings) error
}

type LogRepository interface {
	Append(ctx context.Context, l *Log) error
	// List returns entries newest first. jobID 0 means all jobs.
	List(ctx context.Context, jobID int64, limit int) ([]Log, error)
}
