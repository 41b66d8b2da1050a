package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobtracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	UpstreamRequestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobtracker_upstream_request_duration_seconds",
			Help:       "Duration of requests to third-party APIs.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"service"},
	)
	RemindersSentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_reminders_sent_total",
			Help: "Total number of deadline reminders sent.",
		},
		[]string{"channel"},
	)
	MatchScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobtracker_match_score",
			Help:    "Distribution of resume match scores.",
			Buckets: []float64{10, 25, 50, 75, 90, 100},
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(UpstreamRequestDuration)
		prometheus.MustRegister(RemindersSentCounter)
		prometheus.MustRegister(MatchScore)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
