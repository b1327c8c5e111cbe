package autoapply

import (
	"strings"

	"github.com/jobhunterpro/jobhunter/internal/job"
)

// Criteria is the parsed form of the operator's filter lists. An empty list
// leaves its dimension unfiltered; all three empty matches everything.
type Criteria struct {
	Titles    []string
	Locations []string
	JobTypes  []string
}

// Match filters jobs against the criteria. Each dimension is a
// case-insensitive any-of substring match. Order is preserved, so input
// sorted by relevance stays sorted by relevance.
func Match(jobs []job.Job, c Criteria) []job.Job {
	matched := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if !matchAny(j.Title, c.Titles) {
			continue
		}
		if !matchAny(j.Location, c.Locations) {
			continue
		}
		if !matchAny(j.JobType, c.JobTypes) {
			continue
		}
		matched = append(matched, j)
	}
	return matched
}

func matchAny(value string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	valueLower := strings.ToLower(value)
	for _, p := range patterns {
		if strings.Contains(valueLower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
