package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// StatsRecorder receives status-transition events for daily statistics.
type StatsRecorder interface {
	RecordApplied(ctx context.Context) error
	RecordInterview(ctx context.Context) error
	RecordRejection(ctx context.Context) error
	RecordOffer(ctx context.Context) error
}

// Notifier delivers an operator notification. Implementations must be safe
// to call with a cancelled context; failures are logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type Service struct {
	jobs     Repository
	apps     ApplicationRepository
	stats    StatsRecorder
	notifier Notifier
	now      func() time.Time
}

func NewService(jobs Repository, apps ApplicationRepository, stats StatsRecorder, notifier Notifier) *Service {
	return &Service{
		jobs:     jobs,
		apps:     apps,
		stats:    stats,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context, req ListJobsRequest) ([]Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.jobs.List(ctx, ListFilter{Status: req.Status, Source: req.Source, Sort: req.Sort})
}

func (s *Service) Get(ctx context.Context, req GetJobRequest) (*Detail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	j, err := s.jobs.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	app, err := s.apps.GetByJobID(ctx, j.ID)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &Detail{Job: *j, Application: app}, nil
}

// UpdateStatus applies an external status change (interview scheduled,
// rejection, offer, or a manual application confirmation) and keeps the
// application record and daily statistics in step.
func (s *Service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	j, err := s.jobs.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if j.Status == req.Status {
		return j, nil
	}

	j.Status = req.Status
	if req.Status == StatusApplied {
		j.AppliedDate = s.now()
		// A confirmation without a letter leaves any prepared application
		// record alone.
		if req.CoverLetter != "" {
			app := &Application{
				JobID:       j.ID,
				CoverLetter: req.CoverLetter,
				EmailSent:   false,
				AppliedDate: s.now(),
			}
			if err := s.apps.Upsert(ctx, app); err != nil {
				return nil, fmt.Errorf("upsert application: %w", err)
			}
		}
	}

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	s.recordTransition(ctx, req.Status)

	if req.Status == StatusApplied && s.notifier != nil {
		msg := fmt.Sprintf("Application Sent\n\nJob: %s\nCompany: %s\nURL: %s", j.Title, j.Company, j.URL)
		if err := s.notifier.Notify(ctx, msg); err != nil {
			slog.Warn("status notification failed", "job", j.ID, "error", err)
		}
	}

	return j, nil
}

func (s *Service) Delete(ctx context.Context, req GetJobRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, req.ID)
}

func (s *Service) recordTransition(ctx context.Context, status Status) {
	if s.stats == nil {
		return
	}
	var err error
	switch status {
	case StatusApplied:
		err = s.stats.RecordApplied(ctx)
	case StatusInterview:
		err = s.stats.RecordInterview(ctx)
	case StatusRejected:
		err = s.stats.RecordRejection(ctx)
	case StatusOffer:
		err = s.stats.RecordOffer(ctx)
	}
	if err != nil {
		slog.Warn("record status transition", "status", status, "error", err)
	}
}
