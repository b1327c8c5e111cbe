package autoapply

import (
	"fmt"

	"github.com/jobhunterpro/jobhunter/internal/job"
)

func formatSuccess(j *job.Job, recruiterEmail string) string {
	return fmt.Sprintf(`Application Sent Successfully

Job: %s
Company: %s
Location: %s
Type: %s

Sent to: %s

Keep applying!`, j.Title, j.Company, j.Location, j.JobType, recruiterEmail)
}

func formatManualGuide(j *job.Job) string {
	return fmt.Sprintf(`Manual Action Needed

Job: %s
Company: %s
Location: %s

No recruiter email found in job posting.

Quick Steps:
1. Open the job link below
2. Find the recruiter or hiring manager email on the company site
3. Paste it into the dashboard for this job
4. Send the prepared application

Job Link: %s

Your cover letter is ready.`, j.Title, j.Company, j.Location, j.URL)
}

func formatNoMatches() string {
	return "Auto-Apply: no matching jobs found today"
}
