package api

import (
	"encoding/json"
	"net/http"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jobResponse struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Status          string   `json:"status"`
	JobType         string   `json:"job_type"`
	Priority        string   `json:"priority"`
	ApplicationDate string   `json:"application_date"`
	Deadline        *string  `json:"deadline"`
	Description     string   `json:"description"`
	Resume          *string  `json:"resume"`
	Tags            []string `json:"tags"`
	InterviewDate   *string  `json:"interview_date"`
	JobLink         *string  `json:"job_link"`
}

func toJobResponse(job entities.Job) jobResponse {
	tags := job.Tags
	if tags == nil {
		tags = []string{}
	}

	return jobResponse{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Status:          string(job.Status),
		JobType:         job.JobType,
		Priority:        job.Priority,
		ApplicationDate: job.ApplicationDate.Format(entities.DateLayout),
		Deadline:        entities.FormatDate(job.Deadline),
		Description:     job.Description,
		Resume:          optional(job.Resume),
		Tags:            tags,
		InterviewDate:   entities.FormatDate(job.InterviewDate),
		JobLink:         optional(job.JobLink),
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// writeError maps the error taxonomy onto status codes. Unknown errors are 500.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	var (
		validationErr *apperr.ValidationError
		upstreamErr   *apperr.UpstreamError
		processingErr *apperr.ProcessingError
	)

	switch {
	case errors.As(err, &validationErr):
		code = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrResumeNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperr.ErrUnsupportedFormat), errors.Is(err, apperr.ErrUploadMissing):
		code = http.StatusBadRequest
	case errors.Is(err, apperr.ErrAIDisabled):
		code = http.StatusServiceUnavailable
	case errors.As(err, &upstreamErr):
		code = upstreamErr.StatusCode
		if code < http.StatusBadRequest {
			code = http.StatusBadGateway
		}
		err = upstreamErr
	case errors.As(err, &processingErr):
		err = processingErr
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("request failed: %v", err)
	}

	writeJSON(w, code, map[string]string{"error": rootMessage(err)})
}

// rootMessage drops the wrapping context added for logs, callers see the taxonomy message.
func rootMessage(err error) string {
	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	for _, sentinel := range []error{apperr.ErrNotFound, apperr.ErrResumeNotFound, apperr.ErrUnsupportedFormat,
		apperr.ErrUploadMissing, apperr.ErrAIDisabled} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
