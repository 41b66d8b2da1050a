package api

import (
	"encoding/json"
	"net/http"
)

type searchJobsResponse struct {
	Jobs json.RawMessage `json:"jobs"`
}

type salaryResponse struct {
	AverageSalary float64 `json:"average_salary"`
}

// GET /search-jobs?query=&location=
func (h *Handler) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	jobs, err := h.search.SearchJobs(r.Context(), query.Get("query"), query.Get("location"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchJobsResponse{Jobs: jobs})
}

// GET /salary-estimate?query=&location=
func (h *Handler) handleSalaryEstimate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	estimate, err := h.search.EstimateSalary(r.Context(), query.Get("query"), query.Get("location"))
	if err != nil {
		writeError(w, err)
		return
	}

	if !estimate.Found {
		writeMessage(w, "No salary data available")
		return
	}
	writeJSON(w, http.StatusOK, salaryResponse{AverageSalary: estimate.Average})
}
