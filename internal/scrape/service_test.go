package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/jobhunterpro/jobhunter/internal/apperror"
	"github.com/jobhunterpro/jobhunter/internal/job"
	"github.com/jobhunterpro/jobhunter/internal/scoring"
)

type stubScraper struct {
	source string
	jobs   []ScrapedJob
	err    error
}

func (s stubScraper) Source() string { return s.source }

func (s stubScraper) Scrape(context.Context) ([]ScrapedJob, error) {
	return s.jobs, s.err
}

type memJobRepo struct {
	byFingerprint map[string]*job.Job
	nextID        int64
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{byFingerprint: make(map[string]*job.Job)}
}

func (m *memJobRepo) Create(_ context.Context, j *job.Job) error {
	if _, ok := m.byFingerprint[j.JobID]; ok {
		return apperror.New(apperror.Conflict, "job already exists")
	}
	m.nextID++
	j.ID = m.nextID
	copied := *j
	m.byFingerprint[j.JobID] = &copied
	return nil
}

func (m *memJobRepo) Get(context.Context, int64) (*job.Job, error) { return nil, nil }

func (m *memJobRepo) Exists(_ context.Context, jobID string) (bool, error) {
	_, ok := m.byFingerprint[jobID]
	return ok, nil
}

func (m *memJobRepo) List(context.Context, job.ListFilter) ([]job.Job, error) { return nil, nil }

func (m *memJobRepo) ListByStatus(context.Context, job.Status) ([]job.Job, error) {
	return nil, nil
}

func (m *memJobRepo) Update(context.Context, *job.Job) error            { return nil }
func (m *memJobRepo) Delete(context.Context, int64) error               { return nil }
func (m *memJobRepo) CountByStatus(context.Context) (map[job.Status]int, error) {
	return nil, nil
}
func (m *memJobRepo) CountHighRelevance(context.Context, int) (int, error) { return 0, nil }

type memStats struct{ found int }

func (m *memStats) RecordFound(_ context.Context, n int) error {
	m.found += n
	return nil
}

func newTestService(repo *memJobRepo, stats *memStats, scrapers ...Scraper) *Service {
	registry := NewRegistry()
	for _, sc := range scrapers {
		registry.Register(sc)
	}
	return NewService(registry, repo, stats, scoring.NewScorer(scoring.DefaultWeights()), 15, 2)
}

func relevantJob(url string) ScrapedJob {
	return ScrapedJob{
		Title:       "Junior Python Developer",
		Company:     "Acme",
		URL:         url,
		Description: "Entry level role, Python and SQL",
		PostedText:  "2 days ago",
	}
}

func TestRun_SavesRelevantJobs(t *testing.T) {
	repo := newMemJobRepo()
	stats := &memStats{}
	svc := newTestService(repo, stats, stubScraper{
		source: "adzuna",
		jobs: []ScrapedJob{
			relevantJob("https://example.com/jobs/1"),
			relevantJob("https://example.com/jobs/2"),
		},
	})

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Scraped != 2 || report.Saved != 2 {
		t.Errorf("report = %+v, want 2 scraped, 2 saved", report)
	}
	if stats.found != 2 {
		t.Errorf("stats.found = %d, want 2", stats.found)
	}
	for _, j := range repo.byFingerprint {
		if j.Source != "adzuna" {
			t.Errorf("job source = %q, want adzuna", j.Source)
		}
		if j.RelevanceScore < 15 {
			t.Errorf("saved job below threshold: %d", j.RelevanceScore)
		}
	}
}

func TestRun_FiltersStaleAndIrrelevant(t *testing.T) {
	stale := relevantJob("https://example.com/jobs/1")
	stale.PostedText = "30 days ago"

	irrelevant := relevantJob("https://example.com/jobs/2")
	irrelevant.Title = "Sales Executive"

	lowScore := ScrapedJob{
		Title:      "Zookeeper",
		Company:    "Acme",
		URL:        "https://example.com/jobs/3",
		PostedText: "today",
	}

	repo := newMemJobRepo()
	svc := newTestService(repo, &memStats{}, stubScraper{
		source: "adzuna",
		jobs:   []ScrapedJob{stale, irrelevant, lowScore},
	})

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Saved != 0 || report.Filtered != 3 {
		t.Errorf("report = %+v, want 0 saved, 3 filtered", report)
	}
}

func TestRun_DeduplicatesAcrossSources(t *testing.T) {
	// Same posting listed on two boards with identical identity fields.
	shared := relevantJob("https://example.com/jobs/1")

	repo := newMemJobRepo()
	svc := newTestService(repo, &memStats{},
		stubScraper{source: "adzuna", jobs: []ScrapedJob{shared}},
		stubScraper{source: "remotive", jobs: []ScrapedJob{shared}},
	)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Saved != 1 || report.Duplicates != 1 {
		t.Errorf("report = %+v, want 1 saved, 1 duplicate", report)
	}
}

func TestRun_RepeatRunIsIdempotent(t *testing.T) {
	repo := newMemJobRepo()
	svc := newTestService(repo, &memStats{}, stubScraper{
		source: "adzuna",
		jobs:   []ScrapedJob{relevantJob("https://example.com/jobs/1")},
	})

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if report.Saved != 0 || report.Duplicates != 1 {
		t.Errorf("second run report = %+v, want 0 saved, 1 duplicate", report)
	}
}

func TestRun_FailedSourceDoesNotAbort(t *testing.T) {
	repo := newMemJobRepo()
	svc := newTestService(repo, &memStats{},
		stubScraper{source: "broken", err: errors.New("connection refused")},
		stubScraper{source: "adzuna", jobs: []ScrapedJob{relevantJob("https://example.com/jobs/1")}},
	)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Saved != 1 {
		t.Errorf("Saved = %d, want 1", report.Saved)
	}
	if len(report.Failed) != 1 || report.Failed[0] != "broken" {
		t.Errorf("Failed = %v, want [broken]", report.Failed)
	}
}

func TestRun_DropsMalformedRecords(t *testing.T) {
	noURL := relevantJob("")

	repo := newMemJobRepo()
	svc := newTestService(repo, &memStats{}, stubScraper{
		source: "adzuna",
		jobs:   []ScrapedJob{noURL},
	})

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Saved != 0 || report.Filtered != 1 {
		t.Errorf("report = %+v, want malformed record filtered", report)
	}
}
