package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jobhunterpro/jobhunter/internal/job"
)

type APIResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func writeJSON[T any](w http.ResponseWriter, status int, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse[T]{
		Message: "ok",
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse[string]{
		Message: message,
		Data:    "",
	})
}

func writeCSV(w http.ResponseWriter, jobs []job.Job) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=jobs.csv")
	w.WriteHeader(http.StatusOK)

	_, _ = fmt.Fprintln(w, "Title,Company,Location,Source,Status,RelevanceScore,URL,FoundDate,AppliedDate")
	for _, j := range jobs {
		applied := ""
		if !j.AppliedDate.IsZero() {
			applied = j.AppliedDate.Format(time.DateOnly)
		}
		_, _ = fmt.Fprintf(w, "%s,%s,%s,%s,%s,%d,%s,%s,%s\n",
			csvField(j.Title),
			csvField(j.Company),
			csvField(j.Location),
			j.Source,
			j.Status,
			j.RelevanceScore,
			csvField(j.URL),
			j.FoundDate.Format(time.DateOnly),
			applied,
		)
	}
}

// csvField quotes values that would break the row.
func csvField(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}
