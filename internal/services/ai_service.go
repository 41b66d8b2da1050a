package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// gemini has a large context window, but resumes longer than this are cut anyway
const maxResumeChars = 20000

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

type AIService struct {
	aiClient aiClient
}

func NewAIService(aiClient aiClient) *AIService {
	return &AIService{aiClient: aiClient}
}

func (a *AIService) ReviewResume(ctx context.Context, job entities.Job, resumeText string) (string, error) {
	response, err := a.aiClient.GenerateResponse(ctx, a.reviewRequest(job, resumeText))
	if err != nil {
		return "", err
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return "", errors.Errorf("empty review for job %d", job.ID)
	}

	log.Infof("got resume review for job %d", job.ID)
	return response, nil
}

func (a *AIService) reviewRequest(job entities.Job, resumeText string) (request string) {

	resumeText = truncate(resumeText, maxResumeChars)

	request = "Job title: " + job.Title
	request += "\nCompany: " + job.Company
	request += "\nJob description: " + job.Description

	if len(job.Tags) != 0 {
		request += "\nTags: " + strings.Join(job.Tags, ", ")
	}

	request += "\nResume: " + resumeText
	request += "\nYou review resumes for a job seeker. Start with one line: \"strong fit\", \"partial fit\" or \"weak fit\". " +
		"Then list up to three strengths and up to three gaps of the resume for this job. Be brief."
	return request
}

// truncate cuts s to at most limit bytes without splitting a character.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
