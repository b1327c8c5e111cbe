package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jobhunterpro/jobhunter/internal/job"
)

// JobCounter provides aggregate job counts for the dashboard summary.
type JobCounter interface {
	CountByStatus(ctx context.Context) (map[job.Status]int, error)
	CountHighRelevance(ctx context.Context, threshold int) (int, error)
}

// Summary is the dashboard snapshot: live totals by status plus a response
// rate derived from them.
type Summary struct {
	TotalJobsFound      int     `json:"totalJobsFound"`
	JobsApplied         int     `json:"jobsApplied"`
	PendingApplications int     `json:"pendingApplications"`
	InterviewsScheduled int     `json:"interviewsScheduled"`
	RejectionsReceived  int     `json:"rejectionsReceived"`
	OffersReceived      int     `json:"offersReceived"`
	HighRelevance       int     `json:"highRelevance"`
	ResponseRate        float64 `json:"responseRate"`
}

// Trend is the last week of daily counters for charting.
type Trend struct {
	Days []DailyStats `json:"days"`
}

const highRelevanceThreshold = 70

type Service struct {
	repo Repository
	jobs JobCounter
	now  func() time.Time
}

func NewService(repo Repository, jobs JobCounter) *Service {
	return &Service{
		repo: repo,
		jobs: jobs,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) RecordFound(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return s.repo.Increment(ctx, s.today(), CounterFound, n)
}

func (s *Service) RecordApplied(ctx context.Context) error {
	return s.repo.Increment(ctx, s.today(), CounterApplied, 1)
}

func (s *Service) RecordInterview(ctx context.Context) error {
	return s.repo.Increment(ctx, s.today(), CounterInterviews, 1)
}

func (s *Service) RecordRejection(ctx context.Context) error {
	return s.repo.Increment(ctx, s.today(), CounterRejections, 1)
}

func (s *Service) RecordOffer(ctx context.Context) error {
	return s.repo.Increment(ctx, s.today(), CounterOffers, 1)
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	counts, err := s.jobs.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	high, err := s.jobs.CountHighRelevance(ctx, highRelevanceThreshold)
	if err != nil {
		return nil, fmt.Errorf("count high relevance: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	sum := &Summary{
		TotalJobsFound:      total,
		JobsApplied:         counts[job.StatusApplied],
		PendingApplications: counts[job.StatusFound],
		InterviewsScheduled: counts[job.StatusInterview],
		RejectionsReceived:  counts[job.StatusRejected],
		OffersReceived:      counts[job.StatusOffer],
		HighRelevance:       high,
	}

	responses := sum.InterviewsScheduled + sum.RejectionsReceived + sum.OffersReceived
	applied := sum.JobsApplied + responses // jobs that progressed past Applied still count as applications
	if applied > 0 {
		sum.ResponseRate = math.Round(float64(responses)/float64(applied)*1000) / 10
	}
	return sum, nil
}

func (s *Service) WeeklyTrend(ctx context.Context) (*Trend, error) {
	to := s.today()
	from := to.AddDate(0, 0, -7)
	days, err := s.repo.Range(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats range: %w", err)
	}
	return &Trend{Days: days}, nil
}

func (s *Service) today() time.Time {
	return s.now().Truncate(24 * time.Hour)
}
