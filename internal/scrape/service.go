package scrape

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jobhunterpro/jobhunter/internal/apperror"
	"github.com/jobhunterpro/jobhunter/internal/job"
	"github.com/jobhunterpro/jobhunter/internal/scoring"
)

// StatsRecorder receives the count of newly saved jobs.
type StatsRecorder interface {
	RecordFound(ctx context.Context, n int) error
}

// Report summarizes one ingest pass.
type Report struct {
	Scraped    int      `json:"scraped"`
	Saved      int      `json:"saved"`
	Duplicates int      `json:"duplicates"`
	Filtered   int      `json:"filtered"`
	Failed     []string `json:"failedSources,omitempty"`
}

// Service pulls records from every registered source adapter, gates them on
// freshness and relevance, scores them, and persists the survivors.
type Service struct {
	registry *Registry
	jobs     job.Repository
	stats    StatsRecorder
	scorer   *scoring.Scorer
	filter   scoring.TitleFilter
	fresh    scoring.Freshness
	minScore int
	workers  int
}

func NewService(registry *Registry, jobs job.Repository, stats StatsRecorder, scorer *scoring.Scorer, minScore, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		registry: registry,
		jobs:     jobs,
		stats:    stats,
		scorer:   scorer,
		filter:   scoring.DefaultTitleFilter(),
		fresh:    scoring.DefaultFreshness(),
		minScore: minScore,
		workers:  workers,
	}
}

func (s *Service) Sources() []string {
	return s.registry.Sources()
}

// Run fetches from all adapters concurrently, then filters and saves
// sequentially. An adapter failure is logged and skips only that source.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	type batch struct {
		source string
		jobs   []ScrapedJob
	}

	var (
		mu      sync.Mutex
		batches []batch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, sc := range s.registry.All() {
		g.Go(func() error {
			scraped, err := sc.Scrape(gctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("scrape source failed", "source", sc.Source(), "error", err)
				report.Failed = append(report.Failed, sc.Source())
				return nil // one bad source must not cancel the others
			}
			batches = append(batches, batch{source: sc.Source(), jobs: scraped})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, b := range batches {
		for _, raw := range b.jobs {
			report.Scraped++
			if saved, err := s.save(ctx, raw, b.source, report); err != nil {
				return report, err
			} else if saved {
				report.Saved++
			}
		}
	}

	if report.Saved > 0 && s.stats != nil {
		if err := s.stats.RecordFound(ctx, report.Saved); err != nil {
			slog.Warn("record found stats", "error", err)
		}
	}

	slog.Info("ingest complete",
		"scraped", report.Scraped,
		"saved", report.Saved,
		"duplicates", report.Duplicates,
		"filtered", report.Filtered,
	)
	return report, nil
}

// save applies the freshness, relevance and score gates, then persists the
// job unless it is already known. Returns true when a new row was created.
func (s *Service) save(ctx context.Context, raw ScrapedJob, source string, report *Report) (bool, error) {
	if !s.fresh.Fresh(raw.PostedText) {
		report.Filtered++
		return false, nil
	}
	if !s.filter.Relevant(raw.Title) {
		report.Filtered++
		return false, nil
	}

	j, err := Normalize(raw, source)
	if err != nil {
		if errors.Is(err, ErrMissingIdentity) {
			slog.Debug("dropped malformed record", "source", source, "title", raw.Title)
			report.Filtered++
			return false, nil
		}
		return false, err
	}

	j.RelevanceScore = s.scorer.Score(j.Title, j.Description, j.Company, j.Location)
	if j.RelevanceScore < s.minScore {
		report.Filtered++
		return false, nil
	}

	known, err := s.jobs.Exists(ctx, j.JobID)
	if err != nil {
		return false, err
	}
	if known {
		report.Duplicates++
		return false, nil
	}

	if err := s.jobs.Create(ctx, &j); err != nil {
		// Two sources racing on the same posting: the second insert loses
		// and the job counts as a duplicate, not a failure.
		if apperror.IsConflict(err) {
			report.Duplicates++
			return false, nil
		}
		return false, err
	}
	return true, nil
}
