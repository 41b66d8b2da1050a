package jooble

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://jooble.org/api/"
	serviceName    = "Jooble"
)

type SearchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
}

// searchResponse keeps listings raw, they are handed to callers unmodified.
type searchResponse struct {
	TotalCount int             `json:"totalCount"`
	Jobs       json.RawMessage `json:"jobs"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
}

func NewClient(apiKey string) *Client {
	return &Client{httpClient: &http.Client{}, baseURL: DefaultBaseURL, apiKey: apiKey}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetRateLimit caps outgoing requests, zero leaves them unlimited.
func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// SearchJobs returns the "jobs" array of the Jooble answer as is. A missing array becomes [].
func (c *Client) SearchJobs(ctx context.Context, request SearchRequest) (json.RawMessage, error) {

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %v", err)
	}

	body, err := c.sendRequest(ctx, http.MethodPost, c.baseURL+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	if len(response.Jobs) == 0 || string(response.Jobs) == "null" {
		return json.RawMessage("[]"), nil
	}
	return response.Jobs, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("jooble").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
