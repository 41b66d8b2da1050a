package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/clients/adzuna"
	"github.com/maxaizer/job-tracker/internal/clients/jooble"
	"github.com/maxaizer/job-tracker/internal/logger"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSearchQuery    = "software developer"
	DefaultSalaryQuery    = "Software Engineer"
	DefaultSearchLocation = "United States"
)

type jobListingClient interface {
	SearchJobs(ctx context.Context, request jooble.SearchRequest) (json.RawMessage, error)
}

type salaryClient interface {
	Search(ctx context.Context, what, where string) ([]adzuna.Listing, error)
}

type SalaryEstimate struct {
	Average float64
	// Found is false when no listing reported a minimum salary.
	Found bool
}

// SearchService forwards searches to Jooble and Adzuna, caching successful answers.
type SearchService struct {
	listings jobListingClient
	salaries salaryClient
	cache    *gocache.Cache
}

// NewSearchService caches results for cacheTTL; zero disables caching.
func NewSearchService(listings jobListingClient, salaries salaryClient, cacheTTL time.Duration) *SearchService {
	s := &SearchService{listings: listings, salaries: salaries}
	if cacheTTL > 0 {
		s.cache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

func (s *SearchService) SearchJobs(ctx context.Context, query, location string) (json.RawMessage, error) {

	query = withDefault(query, DefaultSearchQuery)
	location = withDefault(location, DefaultSearchLocation)

	cacheID := cacheKey("jobs", query, location)
	if cached, found := s.fromCache(cacheID); found {
		return cached.(json.RawMessage), nil
	}

	jobs, err := s.listings.SearchJobs(ctx, jooble.SearchRequest{Keywords: query, Location: location})
	if err != nil {
		logUpstreamError(logger.ErrorTypeJoobleApi, "failed to search jobs", err)
		return nil, err
	}

	s.toCache(cacheID, jobs)
	return jobs, nil
}

// EstimateSalary averages salary_min over the listings that report one, rounded to cents.
func (s *SearchService) EstimateSalary(ctx context.Context, query, location string) (*SalaryEstimate, error) {

	query = withDefault(query, DefaultSalaryQuery)
	location = withDefault(location, DefaultSearchLocation)

	cacheID := cacheKey("salary", query, location)
	if cached, found := s.fromCache(cacheID); found {
		estimate := cached.(SalaryEstimate)
		return &estimate, nil
	}

	listings, err := s.salaries.Search(ctx, query, location)
	if err != nil {
		logUpstreamError(logger.ErrorTypeAdzunaApi, "failed to get salaries", err)
		return nil, err
	}

	estimate := averageSalary(listings)
	s.toCache(cacheID, estimate)
	return &estimate, nil
}

func averageSalary(listings []adzuna.Listing) SalaryEstimate {
	var sum float64
	var count int
	for _, listing := range listings {
		if listing.SalaryMin == nil || *listing.SalaryMin == 0 {
			continue
		}
		sum += *listing.SalaryMin
		count++
	}

	if count == 0 {
		return SalaryEstimate{}
	}
	return SalaryEstimate{Average: math.Round(sum/float64(count)*100) / 100, Found: true}
}

func (s *SearchService) fromCache(key string) (any, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *SearchService) toCache(key string, value any) {
	if s.cache == nil {
		return
	}
	s.cache.Set(key, value, gocache.DefaultExpiration)
}

func cacheKey(kind, query, location string) string {
	normalize := func(s string) string { return strings.Join(strings.Fields(strings.ToLower(s)), " ") }
	return kind + "|" + normalize(query) + "|" + normalize(location)
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func logUpstreamError(errorType string, message string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	var upstreamErr *apperr.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.WithField(logger.ErrorTypeField, errorType).Warnf("%s: %v", message, err)
		return
	}
	log.WithField(logger.ErrorTypeField, errorType).Errorf("%s: %v", message, err)
}
