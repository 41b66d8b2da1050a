package apperr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_ValidationError_SurvivesWrapping(t *testing.T) {
	err := errors.Wrap(NewValidationError("missing required fields", "title", "company"), "create job")

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"title", "company"}, validationErr.Fields)
	assert.Equal(t, "create job: missing required fields: title, company", err.Error())
}

func Test_UpstreamError_Message(t *testing.T) {
	err := &UpstreamError{Service: "Jooble", StatusCode: 403, Body: "forbidden"}
	assert.Equal(t, "Jooble API returned status 403: forbidden", err.Error())
}

func Test_SentinelErrors_MatchThroughWrap(t *testing.T) {
	err := errors.Wrapf(ErrNotFound, "job %d", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrResumeNotFound)
}
