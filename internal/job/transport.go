package job

import "github.com/jobhunterpro/jobhunter/internal/apperror"

type GetJobRequest struct {
	ID int64
}

func (r GetJobRequest) Validate() *apperror.AppError {
	if r.ID <= 0 {
		return apperror.New(apperror.BadRequest, "invalid job id")
	}
	return nil
}

type ListJobsRequest struct {
	Status Status
	Source string
	Sort   string
}

func (r ListJobsRequest) Validate() *apperror.AppError {
	if r.Status != "" && !r.Status.Valid() {
		return apperror.New(apperror.BadRequest, "invalid status filter")
	}
	switch r.Sort {
	case "", "relevance", "date", "company":
	default:
		return apperror.New(apperror.BadRequest, "sort must be relevance, date or company")
	}
	return nil
}

type UpdateStatusRequest struct {
	ID          int64
	Status      Status
	CoverLetter string
}

func (r UpdateStatusRequest) Validate() *apperror.AppError {
	if r.ID <= 0 {
		return apperror.New(apperror.BadRequest, "invalid job id")
	}
	if !r.Status.Valid() {
		return apperror.New(apperror.BadRequest, "invalid status")
	}
	// The pipeline never moves a job back to Found; that would make it
	// eligible for a second automatic application.
	if r.Status == StatusFound {
		return apperror.New(apperror.BadRequest, "status cannot be reset to Found")
	}
	return nil
}
