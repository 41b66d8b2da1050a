package services

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/maxaizer/job-tracker/internal/events"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jobRepository interface {
	Add(ctx context.Context, job *entities.Job) error
	GetAll(ctx context.Context) ([]entities.Job, error)
	GetByID(ctx context.Context, id int) (*entities.Job, error)
	Update(ctx context.Context, job *entities.Job) error
	UpdateResume(ctx context.Context, id int, path string) (bool, error)
	Remove(ctx context.Context, id int) (bool, error)
	CountByStatus(ctx context.Context) (map[entities.Status]int64, error)
}

type resumeStorage interface {
	Save(ctx context.Context, jobID int, content []byte) (string, error)
	Prune(jobID int, keep string) error
	Discard(path string) error
}

// JobInput is the payload of add and edit requests.
type JobInput struct {
	Title           string   `json:"title" validate:"required"`
	Company         string   `json:"company" validate:"required"`
	Status          string   `json:"status" validate:"required"`
	JobType         string   `json:"job_type" validate:"required"`
	Priority        string   `json:"priority" validate:"required"`
	ApplicationDate string   `json:"application_date" validate:"required,datetime=2006-01-02"`
	Deadline        *string  `json:"deadline"`
	Description     string   `json:"description" validate:"required"`
	Tags            []string `json:"tags"`
	InterviewDate   *string  `json:"interview_date"`
	JobLink         string   `json:"job_link"`
}

type Stats struct {
	Total      int64 `json:"total_jobs"`
	Applied    int64 `json:"applied"`
	Interviews int64 `json:"interviews"`
	Rejected   int64 `json:"rejected"`
	Offers     int64 `json:"offers"`
}

type JobService struct {
	jobs     jobRepository
	resumes  resumeStorage
	bus      EventBus.Bus
	validate *validator.Validate
	now      func() time.Time
}

func NewJobService(jobs jobRepository, resumes resumeStorage, bus EventBus.Bus) *JobService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &JobService{
		jobs:     jobs,
		resumes:  resumes,
		bus:      bus,
		validate: validate,
		now:      time.Now,
	}
}

func (s *JobService) Create(ctx context.Context, input JobInput) (*entities.Job, error) {

	fields, err := s.parse(input)
	if err != nil {
		return nil, err
	}

	job := entities.NewJob(*fields, s.now())
	if err = s.jobs.Add(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to add job: %v", err)
		return nil, errors.Wrap(err, "failed to add job")
	}

	log.Infof("job %d added: %s at %s", job.ID, job.Title, job.Company)
	return job, nil
}

func (s *JobService) List(ctx context.Context) ([]entities.Job, error) {
	jobs, err := s.jobs.GetAll(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get jobs: %v", err)
		return nil, errors.Wrap(err, "failed to get jobs")
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id int) (*entities.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get job %d: %v", id, err)
		return nil, errors.Wrapf(err, "failed to get job %d", id)
	}
	if job == nil {
		return nil, apperr.ErrNotFound
	}
	return job, nil
}

// Update replaces every mutable field of the job. Nothing is written when the job
// is missing or the input is invalid.
func (s *JobService) Update(ctx context.Context, id int, input JobInput) error {

	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	fields, err := s.parse(input)
	if err != nil {
		return err
	}

	job.Apply(*fields)
	if err = s.jobs.Update(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to update job %d: %v", id, err)
		return errors.Wrapf(err, "failed to update job %d", id)
	}
	return nil
}

func (s *JobService) Delete(ctx context.Context, id int) error {

	removed, err := s.jobs.Remove(ctx, id)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to remove job %d: %v", id, err)
		return errors.Wrapf(err, "failed to remove job %d", id)
	}
	if !removed {
		return apperr.ErrNotFound
	}

	s.bus.Publish(events.JobDeletedTopic, events.JobDeleted{JobID: id})
	return nil
}

// AttachResume stores the file and records its path. The file is written only for existing jobs,
// and the previous resume is removed only once the new path is recorded.
func (s *JobService) AttachResume(ctx context.Context, id int, content []byte) (string, error) {

	job, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	path, err := s.resumes.Save(ctx, id, content)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to save resume of job %d: %v", id, err)
		return "", errors.Wrapf(err, "failed to save resume of job %d", id)
	}

	found, err := s.jobs.UpdateResume(ctx, id, path)
	if err == nil && !found {
		err = apperr.ErrNotFound
	}
	if err != nil {
		// the row still points at the previous resume
		if path != job.Resume {
			if rmErr := s.resumes.Discard(path); rmErr != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Warnf("failed to discard orphaned resume: %v", rmErr)
			}
		}
		if errors.Is(err, apperr.ErrNotFound) {
			return "", err
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to record resume of job %d: %v", id, err)
		return "", errors.Wrapf(err, "failed to record resume of job %d", id)
	}

	if err = s.resumes.Prune(id, path); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Warnf("failed to remove stale resumes of job %d: %v", id, err)
	}

	log.Infof("resume of job %d stored at %s", id, path)
	return path, nil
}

func (s *JobService) Stats(ctx context.Context) (*Stats, error) {

	counts, err := s.jobs.CountByStatus(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to count jobs: %v", err)
		return nil, errors.Wrap(err, "failed to count jobs")
	}

	stats := &Stats{
		Applied:    counts[entities.StatusApplied],
		Interviews: counts[entities.StatusInterview],
		Rejected:   counts[entities.StatusRejected],
		Offers:     counts[entities.StatusOffer],
	}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}

func (s *JobService) parse(input JobInput) (*entities.JobFields, error) {

	if err := s.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return nil, errors.Wrap(err, "failed to validate job")
		}
		return nil, toValidationError(validationErrs)
	}

	applicationDate, err := entities.ParseDate(input.ApplicationDate)
	if err != nil {
		return nil, apperr.NewValidationError("invalid date, expected YYYY-MM-DD", "application_date")
	}
	deadline, err := parseOptionalDate(input.Deadline)
	if err != nil {
		return nil, apperr.NewValidationError("invalid date, expected YYYY-MM-DD", "deadline")
	}
	interviewDate, err := parseOptionalDate(input.InterviewDate)
	if err != nil {
		return nil, apperr.NewValidationError("invalid date, expected YYYY-MM-DD", "interview_date")
	}

	return &entities.JobFields{
		Title:           input.Title,
		Company:         input.Company,
		Status:          entities.Status(input.Status),
		JobType:         input.JobType,
		Priority:        input.Priority,
		ApplicationDate: applicationDate,
		Deadline:        deadline,
		Description:     input.Description,
		InterviewDate:   interviewDate,
		Tags:            input.Tags,
		JobLink:         input.JobLink,
	}, nil
}

func toValidationError(errs validator.ValidationErrors) *apperr.ValidationError {
	var missing, malformed []string
	for _, fieldErr := range errs {
		if fieldErr.Tag() == "required" {
			missing = append(missing, fieldErr.Field())
		} else {
			malformed = append(malformed, fieldErr.Field())
		}
	}

	if len(missing) > 0 {
		return apperr.NewValidationError("missing required fields", missing...)
	}
	return apperr.NewValidationError("invalid date, expected YYYY-MM-DD", malformed...)
}

// parseOptionalDate treats nil and "" alike as no date.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := entities.ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
