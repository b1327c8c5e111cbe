package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jobhunterpro/jobhunter/internal/apperror"
	"github.com/jobhunterpro/jobhunter/internal/autoapply"
	"github.com/jobhunterpro/jobhunter/internal/job"
	"github.com/jobhunterpro/jobhunter/internal/stats"
)

type handler struct {
	services Services
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listJobs(w http.ResponseWriter, r *http.Request) {
	req := job.ListJobsRequest{
		Status: job.Status(r.URL.Query().Get("status")),
		Source: r.URL.Query().Get("source"),
		Sort:   r.URL.Query().Get("sort"),
	}

	jobs, err := h.services.Jobs.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *handler) exportJobs(w http.ResponseWriter, r *http.Request) {
	req := job.ListJobsRequest{
		Status: job.Status(r.URL.Query().Get("status")),
		Source: r.URL.Query().Get("source"),
		Sort:   r.URL.Query().Get("sort"),
	}

	jobs, err := h.services.Jobs.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeCSV(w, jobs)
}

func (h *handler) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	detail, err := h.services.Jobs.Get(r.Context(), job.GetJobRequest{ID: id})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *handler) updateJobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var body struct {
		Status      string `json:"status"`
		CoverLetter string `json:"coverLetter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := job.UpdateStatusRequest{
		ID:          id,
		Status:      job.Status(body.Status),
		CoverLetter: body.CoverLetter,
	}
	updated, err := h.services.Jobs.UpdateStatus(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	if err := h.services.Jobs.Delete(r.Context(), job.GetJobRequest{ID: id}); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *handler) runScrape(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.Scrape.Run(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) runAutoApply(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.AutoApply.Run(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.services.AutoApply.Settings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req autoapply.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.services.AutoApply.SaveSettings(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *handler) listLogs(w http.ResponseWriter, r *http.Request) {
	req := autoapply.ListLogsRequest{}

	if v := r.URL.Query().Get("jobId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid job id")
			return
		}
		req.JobID = id
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		req.Limit = limit
	}

	logs, err := h.services.AutoApply.Logs(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type statsResponse struct {
	Summary *stats.Summary `json:"summary"`
	Weekly  *stats.Trend   `json:"weeklyTrend"`
}

func (h *handler) getStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.Stats.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	weekly, err := h.services.Stats.WeeklyTrend(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Summary: summary, Weekly: weekly})
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		writeError(w, ae.HTTPStatus(), ae.Message())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
