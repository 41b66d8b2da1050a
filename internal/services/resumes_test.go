package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/maxaizer/job-tracker/internal/keywords"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockJobReader struct {
	mock.Mock
}

func (m *mockJobReader) GetByID(ctx context.Context, id int) (*entities.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*entities.Job)
	return job, args.Error(1)
}

type mockTextExtractor struct {
	mock.Mock
}

func (m *mockTextExtractor) Extract(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

type wordsExtractor struct{}

func (wordsExtractor) Extract(text string) keywords.Set {
	set := keywords.NewSet()
	for _, word := range splitWords(text) {
		set[word] = struct{}{}
	}
	return set
}

func splitWords(text string) []string {
	var words []string
	word := ""
	for _, r := range text + " " {
		if r == ' ' {
			if word != "" {
				words = append(words, word)
			}
			word = ""
			continue
		}
		word += string(r)
	}
	return words
}

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) GenerateResponse(ctx context.Context, request string) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

var jobWithResume = &entities.Job{
	ID:          1,
	Title:       "Backend Engineer",
	Company:     "Acme",
	Description: "python backend developer",
	Resume:      "uploads/resume_1.pdf",
}

func Test_ResumeService_Match_ResumeCoveringJobScoresHundred(t *testing.T) {
	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, 1).Return(jobWithResume, nil)
	texts := &mockTextExtractor{}
	texts.On("Extract", "uploads/resume_1.pdf").Return("senior python backend developer docker", nil)

	match, err := NewResumeService(jobs, texts, wordsExtractor{}).Match(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 100.0, match.Score)
	assert.Equal(t, []string{"backend", "developer", "python"}, match.Matched)
}

func Test_ResumeService_Match_WhenJobOrResumeMissing(t *testing.T) {
	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, 1).Return(&entities.Job{ID: 1, Description: "go"}, nil)
	jobs.On("GetByID", mock.Anything, 2).Return(nil, nil)
	service := NewResumeService(jobs, &mockTextExtractor{}, wordsExtractor{})

	_, err := service.Match(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrResumeNotFound)

	_, err = service.Match(context.Background(), 2)
	assert.ErrorIs(t, err, apperr.ErrResumeNotFound)
}

func Test_ResumeService_Match_UnsupportedFormatIsPassedThrough(t *testing.T) {
	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, 1).Return(jobWithResume, nil)
	texts := &mockTextExtractor{}
	texts.On("Extract", mock.Anything).Return("", apperr.ErrUnsupportedFormat)

	_, err := NewResumeService(jobs, texts, wordsExtractor{}).Match(context.Background(), 1)

	assert.ErrorIs(t, err, apperr.ErrUnsupportedFormat)
}

func Test_ResumeService_Match_ExtractionFailureIsProcessingError(t *testing.T) {
	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, 1).Return(jobWithResume, nil)
	texts := &mockTextExtractor{}
	texts.On("Extract", mock.Anything).Return("", errors.New("broken xref table"))

	_, err := NewResumeService(jobs, texts, wordsExtractor{}).Match(context.Background(), 1)

	var processingErr *apperr.ProcessingError
	require.True(t, errors.As(err, &processingErr))
	assert.Equal(t, "Error processing resume: broken xref table", err.Error())
}

func Test_ResumeService_Review_WhenDisabled(t *testing.T) {
	_, err := NewResumeService(&mockJobReader{}, &mockTextExtractor{}, wordsExtractor{}).Review(context.Background(), 1)

	assert.ErrorIs(t, err, apperr.ErrAIDisabled)
}

func Test_ResumeService_Review(t *testing.T) {
	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, 1).Return(jobWithResume, nil)
	texts := &mockTextExtractor{}
	texts.On("Extract", mock.Anything).Return("python developer", nil)

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(request string) bool {
		return assert.Contains(t, request, "python backend developer") &&
			assert.Contains(t, request, "Resume: python developer")
	})).Return("  strong fit\nStrengths: python  ", nil).Once()

	service := NewResumeService(jobs, texts, wordsExtractor{}).WithReviewer(NewAIService(ai))
	review, err := service.Review(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "strong fit\nStrengths: python", review)
	ai.AssertExpectations(t)
}

func Test_ResumeService_Review_WhenAIFails_ReportsBadGateway(t *testing.T) {
	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, 1).Return(jobWithResume, nil)
	texts := &mockTextExtractor{}
	texts.On("Extract", mock.Anything).Return("python developer", nil)

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).Return("", errors.New("googleapi: Error 429: quota"))

	service := NewResumeService(jobs, texts, wordsExtractor{}).WithReviewer(NewAIService(ai))
	_, err := service.Review(context.Background(), 1)

	var upstreamErr *apperr.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "Gemini", upstreamErr.Service)
	assert.Equal(t, 502, upstreamErr.StatusCode)
}

func Test_AIService_ReviewRequest_CutsLongResumeOnCharacterBoundary(t *testing.T) {
	resumeText := strings.Repeat("a", maxResumeChars-1) + "é…"

	request := NewAIService(&mockAiClient{}).reviewRequest(*jobWithResume, resumeText)

	assert.True(t, utf8.ValidString(request))
	assert.Contains(t, request, "Resume: "+strings.Repeat("a", maxResumeChars-1)+"\n")
	assert.NotContains(t, request, "é")
}

func Test_Truncate(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 10))
	assert.Equal(t, "h", truncate("héllo", 2))
	assert.Equal(t, "hé", truncate("héllo", 3))
	assert.Equal(t, "", truncate("é", 1))
}
