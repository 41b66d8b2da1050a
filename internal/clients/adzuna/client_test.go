package adzuna

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func searchMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/search.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func Test_AdzunaClient_Search_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet && req.URL.String() ==
			"https://api.adzuna.com/v1/api/jobs/us/search/1?app_id=id&app_key=key&what=Software+Engineer&where=United+States"
	})).Return(searchMock())

	client := NewClient("id", "key")
	client.SetHTTPClient(mockClient)

	listings, err := client.Search(context.Background(), "Software Engineer", "United States")
	assert.NoError(err)

	assert.Len(listings, 3)
	assert.Equal("Acme", listings[0].Company.DisplayName)
	assert.Equal(100000.0, *listings[0].SalaryMin)
	assert.Equal(120000.5, *listings[1].SalaryMin)
	assert.Nil(listings[2].SalaryMin)
	mockClient.AssertExpectations(t)
}

func Test_AdzunaClient_Search_UsesConfiguredCountry(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Host == "adzuna.test" && req.URL.Path == "/jobs/gb/search/1"
	})).Return(searchMock())

	client := NewClient("id", "key")
	client.SetHTTPClient(mockClient)
	client.SetBaseURL("https://adzuna.test/jobs/")
	client.SetCountry("gb")

	_, err := client.Search(context.Background(), "go", "London")
	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func Test_AdzunaClient_Search_WhenNon200_ReturnsUpstreamError(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: 401,
		Body:       io.NopCloser(bytes.NewBufferString("unauthorised")),
	}, nil)

	client := NewClient("id", "bad")
	client.SetHTTPClient(mockClient)

	_, err := client.Search(context.Background(), "go", "")

	var upstreamErr *apperr.UpstreamError
	assert.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "Adzuna", upstreamErr.Service)
	assert.Equal(t, 401, upstreamErr.StatusCode)
}
