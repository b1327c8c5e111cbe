package job

import "time"

type Status string

const (
	StatusFound     Status = "Found"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusOffer     Status = "Offer"
)

func (s Status) Valid() bool {
	switch s {
	case StatusFound, StatusApplied, StatusInterview, StatusRejected, StatusOffer:
		return true
	}
	return false
}

// Job is a deduplicated job posting. JobID is the content fingerprint
// derived from title, company and URL; it uniquely identifies the posting
// across repeated scrapes.
type Job struct {
	ID             int64     `json:"id"`
	JobID          string    `json:"jobId"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	URL            string    `json:"url"`
	Description    string    `json:"description,omitempty"`
	Source         string    `json:"source"`
	Salary         string    `json:"salary,omitempty"`
	JobType        string    `json:"jobType,omitempty"`
	Status         Status    `json:"status"`
	RelevanceScore int       `json:"relevanceScore"`
	PostedDate     time.Time `json:"postedDate,omitzero"`
	FoundDate      time.Time `json:"foundDate"`
	AppliedDate    time.Time `json:"appliedDate,omitzero"`
}

// Application tracks the outgoing application for a job. At most one per job;
// re-creation overwrites the previous record (upsert semantics).
type Application struct {
	ID               int64     `json:"id"`
	JobID            int64     `json:"jobId"`
	CoverLetter      string    `json:"coverLetter"`
	EmailSent        bool      `json:"emailSent"`
	ResponseReceived bool      `json:"responseReceived"`
	ResponseType     string    `json:"responseType,omitempty"`
	ResponseDate     time.Time `json:"responseDate,omitzero"`
	AppliedDate      time.Time `json:"appliedDate"`
	UpdatedDate      time.Time `json:"updatedDate"`
}

// Detail is a job with its application, if one exists.
type Detail struct {
	Job         Job          `json:"job"`
	Application *Application `json:"application,omitempty"`
}
