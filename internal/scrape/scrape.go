package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ScrapedJob is the loosely-typed record a source adapter produces. Only
// Title and URL are required; the normalizer fills in everything else.
type ScrapedJob struct {
	Title       string
	Company     string
	Location    string
	URL         string
	Description string
	Salary      string
	JobType     string
	// PostedText is the free-text recency phrase as shown by the board
	// ("3 days ago"). Empty when the source has no date.
	PostedText string
	// Posted is the parsed posting time when the source provides one.
	Posted time.Time
}

// Scraper is a job-board source adapter.
type Scraper interface {
	Source() string
	Scrape(ctx context.Context) ([]ScrapedJob, error)
}

type Registry struct {
	mu       sync.RWMutex
	scrapers map[string]Scraper
}

func NewRegistry() *Registry {
	return &Registry{
		scrapers: make(map[string]Scraper),
	}
}

func (r *Registry) Register(s Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrapers[s.Source()] = s
}

func (r *Registry) Get(source string) (Scraper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scrapers[source]
	if !ok {
		return nil, fmt.Errorf("scraper not found for source: %s", source)
	}
	return s, nil
}

func (r *Registry) All() []Scraper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Scraper, 0, len(r.scrapers))
	for _, s := range r.scrapers {
		all = append(all, s)
	}
	return all
}

func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sources := make([]string, 0, len(r.scrapers))
	for src := range r.scrapers {
		sources = append(sources, src)
	}
	return sources
}
