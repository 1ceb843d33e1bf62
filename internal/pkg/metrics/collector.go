package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inkwell",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 表态、收藏、关注的切换结果
	socialTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "social_toggles_total",
			Help:      "Total number of social toggles by kind and result",
		},
		[]string{"kind", "result"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and outcome",
		},
		[]string{"cache", "outcome"},
	)

	eventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "events_consumed_total",
			Help:      "Domain events handled by consumer groups",
		},
		[]string{"group", "type", "status"},
	)
)

// RecordToggle kind: reaction / favorite / follow
func RecordToggle(kind, result string) {
	socialTogglesTotal.WithLabelValues(kind, result).Inc()
}

func RecordCache(cache string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookupsTotal.WithLabelValues(cache, outcome).Inc()
}

func RecordEvent(group, eventType string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	eventsConsumedTotal.WithLabelValues(group, eventType, status).Inc()
}

// GinMiddleware 记录请求数与耗时，route 使用注册时的路径模板
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
