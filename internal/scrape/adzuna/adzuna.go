// Package adzuna implements a job source adapter backed by the Adzuna
// search API. It queries a set of countries and search terms and returns
// loosely-typed records for the ingest pipeline to normalize.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jobhunterpro/jobhunter/internal/scrape"
)

const defaultEndpoint = "https://api.adzuna.com/v1/api/jobs"

var defaultKeywords = []string{
	"python developer",
	"software engineer",
	"junior developer",
	"cybersecurity analyst",
	"security analyst",
	"devops engineer",
	"data analyst",
	"backend developer",
	"full stack developer",
}

// Countries searched by default: regional tech markets first, then large
// remote-friendly ones.
var defaultCountries = []string{"za", "in", "gb", "us"}

// Scraper fetches job postings from the Adzuna REST API.
type Scraper struct {
	appID      string
	appKey     string
	client     *http.Client
	endpoint   string
	countries  []string
	keywords   []string
	maxDaysOld int
	perPage    int
	maxJobs    int
}

// New creates a Scraper with the given credentials and options applied.
func New(appID, appKey string, opts ...Option) *Scraper {
	s := &Scraper{
		appID:      appID,
		appKey:     appKey,
		client:     &http.Client{Timeout: 15 * time.Second},
		endpoint:   defaultEndpoint,
		countries:  defaultCountries,
		keywords:   defaultKeywords,
		maxDaysOld: 7,
		perPage:    10,
		maxJobs:    50,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithEndpoint overrides the API base URL.
func WithEndpoint(ep string) Option {
	return func(s *Scraper) { s.endpoint = ep }
}

// WithCountries sets the country codes to search.
func WithCountries(cc ...string) Option {
	return func(s *Scraper) { s.countries = cc }
}

// WithKeywords sets the search terms.
func WithKeywords(kw ...string) Option {
	return func(s *Scraper) { s.keywords = kw }
}

// WithMaxDaysOld limits results to postings created within n days.
func WithMaxDaysOld(n int) Option {
	return func(s *Scraper) { s.maxDaysOld = n }
}

// WithMaxJobs caps the total number of records returned per Scrape call.
func WithMaxJobs(n int) Option {
	return func(s *Scraper) { s.maxJobs = n }
}

// Source returns the adapter identifier.
func (s *Scraper) Source() string { return "adzuna" }

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		RedirectURL  string  `json:"redirect_url"`
		Description  string  `json:"description"`
		SalaryMin    float64 `json:"salary_min"`
		ContractTime string  `json:"contract_time"`
		Created      string  `json:"created"`
	} `json:"results"`
}

// Scrape searches every configured country and keyword until the job cap is
// reached. A failed request skips only that query.
func (s *Scraper) Scrape(ctx context.Context) ([]scrape.ScrapedJob, error) {
	if s.appID == "" || s.appKey == "" {
		return nil, fmt.Errorf("adzuna credentials not configured")
	}

	var jobs []scrape.ScrapedJob
	for _, country := range s.countries {
		for _, keyword := range s.keywords {
			if len(jobs) >= s.maxJobs {
				return jobs, nil
			}
			if err := ctx.Err(); err != nil {
				return jobs, err
			}

			batch, err := s.search(ctx, country, keyword)
			if err != nil {
				slog.Warn("adzuna query failed", "country", country, "keyword", keyword, "error", err)
				continue
			}
			jobs = append(jobs, batch...)
		}
	}
	return jobs, nil
}

func (s *Scraper) search(ctx context.Context, country, keyword string) ([]scrape.ScrapedJob, error) {
	q := url.Values{}
	q.Set("app_id", s.appID)
	q.Set("app_key", s.appKey)
	q.Set("what", keyword)
	q.Set("max_days_old", strconv.Itoa(s.maxDaysOld))
	q.Set("results_per_page", strconv.Itoa(s.perPage))
	q.Set("content-type", "application/json")

	reqURL := fmt.Sprintf("%s/%s/search/1?%s", s.endpoint, country, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	jobs := make([]scrape.ScrapedJob, 0, len(sr.Results))
	for _, r := range sr.Results {
		var posted time.Time
		if r.Created != "" {
			posted, _ = time.Parse(time.RFC3339, r.Created)
		}

		var salary string
		if r.SalaryMin > 0 {
			salary = strconv.FormatFloat(r.SalaryMin, 'f', 0, 64)
		}

		jobs = append(jobs, scrape.ScrapedJob{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			URL:         r.RedirectURL,
			Description: r.Description,
			Salary:      salary,
			JobType:     contractLabel(r.ContractTime),
			Posted:      posted,
			// Adzuna already filters by max_days_old server-side, so no
			// recency phrase is attached; the freshness gate passes these.
		})
	}
	return jobs, nil
}

func contractLabel(contractTime string) string {
	switch contractTime {
	case "full_time":
		return "Full-time"
	case "part_time":
		return "Part-time"
	default:
		return ""
	}
}
