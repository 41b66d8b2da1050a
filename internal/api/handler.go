package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/maxaizer/job-tracker/internal/keywords"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/maxaizer/job-tracker/internal/services"
	log "github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	maxUploadSize   = 10 << 20
)

type jobService interface {
	Create(ctx context.Context, input services.JobInput) (*entities.Job, error)
	List(ctx context.Context) ([]entities.Job, error)
	Get(ctx context.Context, id int) (*entities.Job, error)
	Update(ctx context.Context, id int, input services.JobInput) error
	Delete(ctx context.Context, id int) error
	AttachResume(ctx context.Context, id int, content []byte) (string, error)
	Stats(ctx context.Context) (*services.Stats, error)
}

type resumeService interface {
	Match(ctx context.Context, jobID int) (*keywords.Match, error)
	Review(ctx context.Context, jobID int) (string, error)
}

type searchService interface {
	SearchJobs(ctx context.Context, query, location string) (json.RawMessage, error)
	EstimateSalary(ctx context.Context, query, location string) (*services.SalaryEstimate, error)
}

type Handler struct {
	jobs    jobService
	resumes resumeService
	search  searchService
}

func NewHandler(jobs jobService, resumes resumeService, search searchService) *Handler {
	return &Handler{jobs: jobs, resumes: resumes, search: search}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(withRequestID, withMetrics)

	r.HandleFunc("/", h.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/add-job", h.handleAddJob).Methods(http.MethodPost)
	r.HandleFunc("/jobs", h.handleListJobs).Methods(http.MethodGet)
	r.HandleFunc("/jobs/{id:[0-9]+}", h.handleGetJob).Methods(http.MethodGet)
	r.HandleFunc("/edit-job/{id:[0-9]+}", h.handleEditJob).Methods(http.MethodPut)
	r.HandleFunc("/delete-job/{id:[0-9]+}", h.handleDeleteJob).Methods(http.MethodDelete)
	r.HandleFunc("/upload-resume/{id:[0-9]+}", h.handleUploadResume).Methods(http.MethodPost)
	r.HandleFunc("/match-resume/{id:[0-9]+}", h.handleMatchResume).Methods(http.MethodGet)
	r.HandleFunc("/resume-review/{id:[0-9]+}", h.handleResumeReview).Methods(http.MethodGet)
	r.HandleFunc("/job-stats", h.handleJobStats).Methods(http.MethodGet)
	r.HandleFunc("/search-jobs", h.handleSearchJobs).Methods(http.MethodGet)
	r.HandleFunc("/salary-estimate", h.handleSalaryEstimate).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}

// Router returns the routes wrapped with a permissive CORS policy.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", requestIDHeader}),
	)(r)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		duration := time.Since(start)
		metrics.RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Observe(duration.Seconds())
		log.WithFields(log.Fields{
			"request_id": w.Header().Get(requestIDHeader),
			"status":     rw.status,
			"duration":   duration,
		}).Debugf("%s %s", r.Method, r.URL.Path)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func pathID(r *http.Request) int {
	// the route pattern only admits digits
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}
