package autoapply

import (
	"regexp"

	"github.com/jobhunterpro/jobhunter/internal/apperror"
)

var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type UpdateSettingsRequest struct {
	Enabled               bool   `json:"enabled"`
	JobTitles             string `json:"jobTitles"`
	Locations             string `json:"locations"`
	JobTypes              string `json:"jobTypes"`
	MaxApplicationsPerDay int    `json:"maxApplicationsPerDay"`
	AutoApplyTime         string `json:"autoApplyTime"`
}

func (r UpdateSettingsRequest) Validate() *apperror.AppError {
	if r.MaxApplicationsPerDay <= 0 {
		return apperror.New(apperror.BadRequest, "maxApplicationsPerDay must be positive")
	}
	if r.AutoApplyTime != "" && !timeRe.MatchString(r.AutoApplyTime) {
		return apperror.New(apperror.BadRequest, "autoApplyTime must be HH:MM")
	}
	return nil
}

type ListLogsRequest struct {
	JobID int64
	Limit int
}

func (r ListLogsRequest) Validate() *apperror.AppError {
	if r.JobID < 0 {
		return apperror.New(apperror.BadRequest, "invalid job id")
	}
	if r.Limit < 0 {
		return apperror.New(apperror.BadRequest, "invalid limit")
	}
	return nil
}
