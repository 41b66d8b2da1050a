package services

import (
	"context"
	"net/http"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/maxaizer/job-tracker/internal/keywords"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jobReader interface {
	GetByID(ctx context.Context, id int) (*entities.Job, error)
}

type textExtractor interface {
	Extract(path string) (string, error)
}

type keywordExtractor interface {
	Extract(text string) keywords.Set
}

type resumeReviewer interface {
	ReviewResume(ctx context.Context, job entities.Job, resumeText string) (string, error)
}

// ResumeService compares the stored resume of a job with its description.
type ResumeService struct {
	jobs     jobReader
	texts    textExtractor
	keywords keywordExtractor
	reviewer resumeReviewer
}

func NewResumeService(jobs jobReader, texts textExtractor, keywords keywordExtractor) *ResumeService {
	return &ResumeService{jobs: jobs, texts: texts, keywords: keywords}
}

// WithReviewer enables AI resume review.
func (s *ResumeService) WithReviewer(reviewer resumeReviewer) *ResumeService {
	s.reviewer = reviewer
	return s
}

func (s *ResumeService) Match(ctx context.Context, jobID int) (*keywords.Match, error) {

	job, text, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}

	match := keywords.Score(s.keywords.Extract(job.Description), s.keywords.Extract(text))
	metrics.MatchScore.Observe(match.Score)

	log.Infof("resume of job %d matched with score %.2f", jobID, match.Score)
	return &match, nil
}

func (s *ResumeService) Review(ctx context.Context, jobID int) (string, error) {

	if s.reviewer == nil {
		return "", apperr.ErrAIDisabled
	}

	job, text, err := s.load(ctx, jobID)
	if err != nil {
		return "", err
	}

	review, err := s.reviewer.ReviewResume(ctx, *job, text)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).Errorf("failed to review resume of job %d: %v", jobID, err)
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", &apperr.UpstreamError{Service: "Gemini", StatusCode: http.StatusBadGateway, Body: err.Error()}
	}
	return review, nil
}

func (s *ResumeService) load(ctx context.Context, jobID int) (*entities.Job, string, error) {

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get job %d: %v", jobID, err)
		return nil, "", errors.Wrapf(err, "failed to get job %d", jobID)
	}
	if job == nil || !job.HasResume() {
		return nil, "", apperr.ErrResumeNotFound
	}

	text, err := s.texts.Extract(job.Resume)
	if err != nil {
		if errors.Is(err, apperr.ErrUnsupportedFormat) {
			return nil, "", err
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to extract resume text of job %d: %v", jobID, err)
		return nil, "", &apperr.ProcessingError{Err: err}
	}
	return job, text, nil
}
