package api

import (
	"io"
	"net/http"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/pkg/errors"
)

type matchResponse struct {
	MatchScore      float64  `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

type reviewResponse struct {
	Review string `json:"review"`
}

// POST /upload-resume/{id}
func (h *Handler) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			err = apperr.ErrUploadMissing
		} else {
			err = apperr.NewValidationError("invalid upload: " + err.Error())
		}
		writeError(w, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, apperr.NewValidationError("invalid upload: "+err.Error()))
		return
	}

	if _, err = h.jobs.AttachResume(r.Context(), pathID(r), content); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Resume uploaded successfully!")
}

// GET /match-resume/{id}
func (h *Handler) handleMatchResume(w http.ResponseWriter, r *http.Request) {
	match, err := h.resumes.Match(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matchResponse{
		MatchScore:      match.Score,
		MatchedKeywords: match.Matched,
		MissingKeywords: match.Missing,
	})
}

// GET /resume-review/{id}
func (h *Handler) handleResumeReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.resumes.Review(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Review: review})
}
