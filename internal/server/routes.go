package server

import (
	"net/http"

	"github.com/jobhunterpro/jobhunter/internal/autoapply"
	"github.com/jobhunterpro/jobhunter/internal/job"
	"github.com/jobhunterpro/jobhunter/internal/scrape"
	"github.com/jobhunterpro/jobhunter/internal/stats"
)

// Services bundles everything the HTTP layer dispatches to.
type Services struct {
	Jobs      *job.Service
	Scrape    *scrape.Service
	AutoApply *autoapply.Service
	Stats     *stats.Service
}

// NewHandler creates the full HTTP handler with routes and middleware.
// Exported for use in tests (e.g., httptest.NewServer).
func NewHandler(services Services) http.Handler {
	return newMux(services)
}

func newMux(services Services) http.Handler {
	h := &handler{services: services}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/v1/jobs", h.listJobs)
	mux.HandleFunc("GET /api/v1/jobs/export", h.exportJobs)
	mux.HandleFunc("GET /api/v1/jobs/{id}", h.getJob)
	mux.HandleFunc("PATCH /api/v1/jobs/{id}/status", h.updateJobStatus)
	mux.HandleFunc("DELETE /api/v1/jobs/{id}", h.deleteJob)
	mux.HandleFunc("POST /api/v1/scrape", h.runScrape)
	mux.HandleFunc("POST /api/v1/autoapply/run", h.runAutoApply)
	mux.HandleFunc("GET /api/v1/autoapply/settings", h.getSettings)
	mux.HandleFunc("PUT /api/v1/autoapply/settings", h.updateSettings)
	mux.HandleFunc("GET /api/v1/autoapply/logs", h.listLogs)
	mux.HandleFunc("GET /api/v1/stats", h.getStats)

	// Apply middleware stack: recovery -> requestID -> logging
	var handler http.Handler = mux
	handler = logging(handler)
	handler = requestID(handler)
	handler = recovery(handler)

	return handler
}
