package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillquest_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillquest_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillquest_quiz_submissions_total",
			Help: "Graded quiz submissions by outcome",
		},
		[]string{"passed"},
	)

	AchievementsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillquest_achievements_awarded_total",
			Help: "Achievement records appended by type",
		},
		[]string{"type"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillquest_cache_lookups_total",
			Help: "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, QuizSubmissions, AchievementsAwarded, CacheLookups)
	})
}

// RecordQuizSubmission counts one graded submission.
func RecordQuizSubmission(passed bool) {
	QuizSubmissions.WithLabelValues(strconv.FormatBool(passed)).Inc()
}

// RecordAchievement counts one appended achievement.
func RecordAchievement(achievementType string) {
	AchievementsAwarded.WithLabelValues(achievementType).Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}

func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Route path keeps label cardinality bounded.
		endpoint := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		RequestCounter.WithLabelValues(c.Method(), endpoint, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		return err
	}
}

func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
