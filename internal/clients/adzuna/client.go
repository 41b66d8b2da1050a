package adzuna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs"
	DefaultCountry = "us"
	serviceName    = "Adzuna"
)

type Listing struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
	Company   struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
}

type searchResponse struct {
	Count   int       `json:"count"`
	Results []Listing `json:"results"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	country     string
	appID       string
	appKey      string
}

func NewClient(appID, appKey string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		country:    DefaultCountry,
		appID:      appID,
		appKey:     appKey,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

func (c *Client) SetCountry(country string) {
	if country != "" {
		c.country = country
	}
}

// SetRateLimit caps outgoing requests, zero leaves them unlimited.
func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// Search returns the first page of listings for the query and location.
func (c *Client) Search(ctx context.Context, what, where string) ([]Listing, error) {

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("what", what)
	params.Set("where", where)

	apiURL := fmt.Sprintf("%s/%s/search/1?%s", c.baseURL, c.country, params.Encode())

	body, err := c.sendRequest(ctx, http.MethodGet, apiURL)
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return response.Results, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("adzuna").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
