package api

import (
	"encoding/json"
	"net/http"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/services"
)

type addJobResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

// GET /
func (h *Handler) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Job Tracker Backend is Running!"))
}

// POST /add-job
func (h *Handler) handleAddJob(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeJobInput(w, r)
	if !ok {
		return
	}

	job, err := h.jobs.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addJobResponse{Message: "Job added successfully!", ID: job.ID})
}

// GET /jobs
func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, toJobResponse(job))
	}
	writeJSON(w, http.StatusOK, response)
}

// GET /jobs/{id}
func (h *Handler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(*job))
}

// PUT /edit-job/{id}
func (h *Handler) handleEditJob(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeJobInput(w, r)
	if !ok {
		return
	}

	if err := h.jobs.Update(r.Context(), pathID(r), input); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Job updated successfully!")
}

// DELETE /delete-job/{id}
func (h *Handler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.Delete(r.Context(), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Job deleted successfully!")
}

// GET /job-stats
func (h *Handler) handleJobStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.jobs.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func decodeJobInput(w http.ResponseWriter, r *http.Request) (services.JobInput, bool) {
	var input services.JobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperr.NewValidationError("bad request body: "+err.Error()))
		return input, false
	}
	return input, true
}
