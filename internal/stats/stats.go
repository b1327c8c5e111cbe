package stats

import "time"

// DailyStats is the counter row for one UTC calendar date. Rows are created
// lazily on the first event of the day and only ever incremented.
type DailyStats struct {
	ID                  int64     `json:"id"`
	Date                time.Time `json:"date"`
	JobsFound           int       `json:"jobsFound"`
	JobsApplied         int       `json:"jobsApplied"`
	InterviewsScheduled int       `json:"interviewsScheduled"`
	RejectionsReceived  int       `json:"rejectionsReceived"`
	OffersReceived      int       `json:"offersReceived"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Counter names a DailyStats column that can be incremented.
type Counter string

const (
	CounterFound      Counter = "jobs_found"
	CounterApplied    Counter = "jobs_applied"
	CounterInterviews Counter = "interviews_scheduled"
	CounterRejections Counter = "rejections_received"
	CounterOffers     Counter = "offers_received"
)

func (c Counter) Valid() bool {
	switch c {
	case CounterFound, CounterApplied, CounterInterviews, CounterRejections, CounterOffers:
		return true
	}
	return false
}
