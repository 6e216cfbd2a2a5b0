package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interviewhub"

var (
	LikesToggled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "likes_toggled_total", Help: "Like toggles by target and resulting state",
	}, []string{"target", "state"})
	CommentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "comments_created_total", Help: "Comments created",
	})
	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "posts_created_total", Help: "Posts created",
	})
	NotificationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "notifications_created_total", Help: "Notifications stored by type",
	}, []string{"type"})
	ResultQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "result_queries_total", Help: "Interview result lookups by outcome",
	}, []string{"status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(LikesToggled, CommentsCreated, PostsCreated, NotificationsCreated, ResultQueries, HTTPRequestDuration)
}

func Handler() http.Handler { return promhttp.Handler() }

// ObserveLike records a toggle outcome.
func ObserveLike(target string, liked bool) {
	state := "unliked"
	if liked {
		state = "liked"
	}
	LikesToggled.WithLabelValues(target, state).Inc()
}

func ObserveNotifications(kind string, n int) {
	NotificationsCreated.WithLabelValues(kind).Add(float64(n))
}

func ObserveResultQuery(status string) { ResultQueries.WithLabelValues(status).Inc() }

func ObserveHTTP(method, route, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
