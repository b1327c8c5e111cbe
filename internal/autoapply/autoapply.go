// Package autoapply implements the scheduled application pass: matching
// stored jobs against the operator's criteria, admitting up to the daily
// quota, classifying each admitted job, and recording an audit log entry
// per attempt.
package autoapply

import (
	"strings"
	"time"
)

// Actions recorded in the audit log, one per processed job.
const (
	ActionAutoApplied  = "auto_applied"
	ActionManualNeeded = "manual_apply_needed"
	ActionSkipped      = "skipped"
	ActionError        = "error"
)

// Settings is the operator's auto-apply configuration. A single row;
// criteria are comma-delimited lists parsed on demand.
type Settings struct {
	ID                    int64     `json:"id"`
	Enabled               bool      `json:"enabled"`
	JobTitles             string    `json:"jobTitles"`
	Locations             string    `json:"locations"`
	JobTypes              string    `json:"jobTypes"`
	MaxApplicationsPerDay int       `json:"maxApplicationsPerDay"`
	AutoApplyTime         string    `json:"autoApplyTime"`
	TotalAutoApplied      int       `json:"totalAutoApplied"`
	LastRun               time.Time `json:"lastRun,omitzero"`
	CreatedAt             time.Time `json:"createdAt,omitzero"`
	UpdatedAt             time.Time `json:"updatedAt,omitzero"`
}

// Criteria returns the parsed filter lists.
func (s *Settings) Criteria() Criteria {
	return Criteria{
		Titles:    splitList(s.JobTitles),
		Locations: splitList(s.Locations),
		JobTypes:  splitList(s.JobTypes),
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Log is one append-only audit entry for a job-processing attempt.
type Log struct {
	ID               int64     `json:"id"`
	JobID            int64     `json:"jobId"`
	Action           string    `json:"action"`
	Reason           string    `json:"reason"`
	RecruiterEmail   string    `json:"recruiterEmail,omitempty"`
	EmailSent        bool      `json:"emailSent"`
	NotificationSent bool      `json:"notificationSent"`
	CreatedAt        time.Time `json:"createdAt"`
}
