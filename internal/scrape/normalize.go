package scrape

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/jobhunterpro/jobhunter/internal/job"
)

// ErrMissingIdentity marks a scraped record without the minimum identity
// signals (title and URL). Such records are dropped before they become jobs.
var ErrMissingIdentity = errors.New("scraped record missing title or url")

const (
	defaultCompany  = "Unknown Company"
	defaultLocation = "Unknown"
)

// Normalize converts a raw scraped record into a canonical job. Missing
// optional fields get defaults; a missing title or URL is an error.
func Normalize(raw ScrapedJob, source string) (job.Job, error) {
	title := strings.TrimSpace(raw.Title)
	url := strings.TrimSpace(raw.URL)
	if title == "" || url == "" {
		return job.Job{}, ErrMissingIdentity
	}

	company := strings.TrimSpace(raw.Company)
	if company == "" {
		company = defaultCompany
	}
	location := strings.TrimSpace(raw.Location)
	if location == "" {
		location = defaultLocation
	}

	return job.Job{
		JobID:       Fingerprint(title, company, url),
		Title:       title,
		Company:     company,
		Location:    location,
		URL:         url,
		Description: strings.TrimSpace(raw.Description),
		Source:      source,
		Salary:      strings.TrimSpace(raw.Salary),
		JobType:     strings.TrimSpace(raw.JobType),
		Status:      job.StatusFound,
		PostedDate:  raw.Posted,
	}, nil
}

// Fingerprint derives the stable dedup identity of a posting from its title,
// company and URL. Mutable fields like the description are deliberately left
// out so a re-scraped posting with reworded copy is still the same job.
// Inputs are case- and whitespace-normalized first, making the hash
// independent of formatting differences between scrapes.
func Fingerprint(title, company, url string) string {
	canonical := normalizeField(title) + "|" + normalizeField(company) + "|" + normalizeField(url)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:16]
}

func normalizeField(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
