package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_ResponseText_JoinsTextParts(t *testing.T) {
	response := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Good fit. "), genai.Text("Strengths: Go")}},
		}},
	}

	text, err := responseText(response)
	assert.NoError(t, err)
	assert.Equal(t, "Good fit. Strengths: Go", text)
}

func Test_ResponseText_WhenNoCandidates_ShouldFail(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, errEmptyResponse)

	_, err = responseText(nil)
	assert.ErrorIs(t, err, errEmptyResponse)
}

func Test_IsInternalError(t *testing.T) {
	assert.False(t, isInternalError(nil))
	assert.True(t, isInternalError(errors.New("googleapi: Error 500: internal")))
	assert.False(t, isInternalError(errors.New("googleapi: Error 429: quota")))
}
