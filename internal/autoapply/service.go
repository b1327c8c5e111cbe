package autoapply

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jobhunterpro/jobhunter/internal/job"
)

// LetterGenerator produces a cover letter for a posting.
type LetterGenerator interface {
	CoverLetter(ctx context.Context, title, company, description string) (string, error)
}

// Mailer delivers the application email.
type Mailer interface {
	SendApplication(ctx context.Context, to, jobTitle, company, coverLetter string) error
}

// Notifier delivers operator notifications; failures never abort processing.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// StatsRecorder receives applied-transition events.
type StatsRecorder interface {
	RecordApplied(ctx context.Context) error
}

// RunReport is the outcome of one scheduling pass. JobsProcessed counts
// jobs the pass acted on (auto and manual paths both); EmailsSent counts
// actual deliveries. The two are distinct on purpose: the settings counter
// tracks processed jobs, not sent emails.
type RunReport struct {
	RunID         string `json:"runId"`
	Enabled       bool   `json:"enabled"`
	Matched       int    `json:"matched"`
	Admitted      int    `json:"admitted"`
	Applied       int    `json:"applied"`
	ManualNeeded  int    `json:"manualNeeded"`
	Skipped       int    `json:"skipped"`
	Errored       int    `json:"errored"`
	JobsProcessed int    `json:"jobsProcessed"`
	EmailsSent    int    `json:"emailsSent"`
}

type Service struct {
	jobs     job.Repository
	apps     job.ApplicationRepository
	settings SettingsRepository
	logs     LogRepository
	stats    StatsRecorder
	letters  LetterGenerator
	mailer   Mailer
	notifier Notifier
	now      func() time.Time
}

func NewService(
	jobs job.Repository,
	apps job.ApplicationRepository,
	settings SettingsRepository,
	logs LogRepository,
	stats StatsRecorder,
	letters LetterGenerator,
	mailer Mailer,
	notifier Notifier,
) *Service {
	return &Service{
		jobs:     jobs,
		apps:     apps,
		settings: settings,
		logs:     logs,
		stats:    stats,
		letters:  letters,
		mailer:   mailer,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one scheduling pass: load the active settings, match and
// order candidates, admit up to the daily quota, classify each admitted
// job, then record last_run and the processed count. Failures inside a
// job's classification are contained to that job; only settings or store
// failures at the top abort the run.
func (s *Service) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString()}

	st, err := s.settings.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load auto-apply settings: %w", err)
	}
	if st == nil {
		slog.Info("auto-apply disabled, skipping run")
		return report, nil
	}
	report.Enabled = true
	start := s.now()

	found, err := s.jobs.ListByStatus(ctx, job.StatusFound)
	if err != nil {
		return nil, fmt.Errorf("list found jobs: %w", err)
	}

	matched := Match(found, st.Criteria())
	report.Matched = len(matched)

	admitted := matched
	if st.MaxApplicationsPerDay > 0 && len(admitted) > st.MaxApplicationsPerDay {
		admitted = admitted[:st.MaxApplicationsPerDay]
	}
	report.Admitted = len(admitted)

	slog.Info("auto-apply run started",
		"run", report.RunID,
		"matched", report.Matched,
		"admitted", report.Admitted,
		"quota", st.MaxApplicationsPerDay,
	)

	if len(admitted) == 0 {
		s.notify(ctx, formatNoMatches())
	}

	for i := range admitted {
		s.processJob(ctx, &admitted[i], report)
	}

	// last_run marks the run's start time regardless of per-job outcomes,
	// and the settings counter tracks processed jobs, not sent emails.
	st.LastRun = start
	st.TotalAutoApplied += report.JobsProcessed
	if err := s.settings.Save(ctx, st); err != nil {
		slog.Error("save auto-apply settings after run", "run", report.RunID, "error", err)
	}

	slog.Info("auto-apply run complete",
		"run", report.RunID,
		"applied", report.Applied,
		"manualNeeded", report.ManualNeeded,
		"skipped", report.Skipped,
		"errored", report.Errored,
	)
	return report, nil
}

// processJob classifies one admitted job: skipped, auto_applied,
// manual_apply_needed, or error.
func (s *Service) processJob(ctx context.Context, j *job.Job, report *RunReport) {
	app, err := s.apps.GetByJobID(ctx, j.ID)
	if err != nil {
		s.recordError(ctx, j, report, fmt.Errorf("load application: %w", err))
		return
	}
	if app != nil {
		s.appendLog(ctx, &Log{
			JobID:  j.ID,
			Action: ActionSkipped,
			Reason: "already applied to this job",
		})
		report.Skipped++
		return
	}

	cover, err := s.letters.CoverLetter(ctx, j.Title, j.Company, j.Description)
	if err != nil {
		s.recordError(ctx, j, report, fmt.Errorf("generate cover letter: %w", err))
		return
	}

	if email := ExtractEmail(j.Description); email != "" {
		s.autoApply(ctx, j, email, cover, report)
	} else {
		s.manualApply(ctx, j, cover, report)
	}
}

func (s *Service) autoApply(ctx context.Context, j *job.Job, email, cover string, report *RunReport) {
	if s.mailer == nil {
		s.recordError(ctx, j, report, fmt.Errorf("mail transport not configured"))
		return
	}
	if err := s.mailer.SendApplication(ctx, email, j.Title, j.Company, cover); err != nil {
		s.recordError(ctx, j, report, fmt.Errorf("send application email: %w", err))
		return
	}

	now := s.now()
	if err := s.apps.Upsert(ctx, &job.Application{
		JobID:       j.ID,
		CoverLetter: cover,
		EmailSent:   true,
		AppliedDate: now,
	}); err != nil {
		s.recordError(ctx, j, report, fmt.Errorf("save application: %w", err))
		return
	}

	j.Status = job.StatusApplied
	j.AppliedDate = now
	if err := s.jobs.Update(ctx, j); err != nil {
		s.recordError(ctx, j, report, fmt.Errorf("update job status: %w", err))
		return
	}

	if s.stats != nil {
		if err := s.stats.RecordApplied(ctx); err != nil {
			slog.Warn("record applied stats", "job", j.ID, "error", err)
		}
	}

	notified := s.notify(ctx, formatSuccess(j, email))
	s.appendLog(ctx, &Log{
		JobID:            j.ID,
		Action:           ActionAutoApplied,
		Reason:           "email found and sent automatically",
		RecruiterEmail:   email,
		EmailSent:        true,
		NotificationSent: notified,
	})

	report.Applied++
	report.EmailsSent++
	report.JobsProcessed++
	slog.Info("auto-applied", "job", j.ID, "title", j.Title, "company", j.Company)
}

// manualApply prepares the application but leaves the job in Found so a
// human can supply the recruiter address and confirm.
func (s *Service) manualApply(ctx context.Context, j *job.Job, cover string, report *RunReport) {
	if err := s.apps.Upsert(ctx, &job.Application{
		JobID:       j.ID,
		CoverLetter: cover,
		EmailSent:   false,
		AppliedDate: s.now(),
	}); err != nil {
		s.recordError(ctx, j, report, fmt.Errorf("save application: %w", err))
		return
	}

	notified := s.notify(ctx, formatManualGuide(j))
	s.appendLog(ctx, &Log{
		JobID:            j.ID,
		Action:           ActionManualNeeded,
		Reason:           "no recruiter email found - manual action needed",
		EmailSent:        false,
		NotificationSent: notified,
	})

	report.ManualNeeded++
	report.JobsProcessed++
	slog.Info("manual apply needed", "job", j.ID, "title", j.Title, "company", j.Company)
}

func (s *Service) recordError(ctx context.Context, j *job.Job, report *RunReport, err error) {
	slog.Error("auto-apply job failed", "job", j.ID, "title", j.Title, "error", err)
	s.appendLog(ctx, &Log{
		JobID:  j.ID,
		Action: ActionError,
		Reason: err.Error(),
	})
	report.Errored++
}

// appendLog writes an audit entry. A failed append is logged but does not
// abort the job's processing; the primary records are the source of truth.
func (s *Service) appendLog(ctx context.Context, l *Log) {
	if err := s.logs.Append(ctx, l); err != nil {
		slog.Error("append auto-apply log", "job", l.JobID, "action", l.Action, "error", err)
	}
}

// Settings returns the stored configuration, or defaults when none has
// been saved yet.
func (s *Service) Settings(ctx context.Context) (*Settings, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load auto-apply settings: %w", err)
	}
	if st == nil {
		st = &Settings{MaxApplicationsPerDay: 5, AutoApplyTime: "09:00"}
	}
	return st, nil
}

// SaveSettings applies the operator's update on top of the stored row,
// preserving the run counters.
func (s *Service) SaveSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error) {
	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}
	st, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	st.Enabled = req.Enabled
	st.JobTitles = req.JobTitles
	st.Locations = req.Locations
	st.JobTypes = req.JobTypes
	st.MaxApplicationsPerDay = req.MaxApplicationsPerDay
	if req.AutoApplyTime != "" {
		st.AutoApplyTime = req.AutoApplyTime
	}
	if err := s.settings.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save auto-apply settings: %w", err)
	}
	return st, nil
}

// Logs returns audit entries, newest first, optionally scoped to one job.
func (s *Service) Logs(ctx context.Context, req ListLogsRequest) ([]Log, error) {
	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}
	limit := req.Limit
	if limit == 0 {
		limit = 100
	}
	entries, err := s.logs.List(ctx, req.JobID, limit)
	if err != nil {
		return nil, fmt.Errorf("list auto-apply logs: %w", err)
	}
	return entries, nil
}

// notify sends a fire-and-forget operator notification and reports whether
// it was delivered.
func (s *Service) notify(ctx context.Context, message string) bool {
	if s.notifier == nil {
		return false
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		slog.Warn("notification failed", "error", err)
		return false
	}
	return true
}
