package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ambeauty",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method and status code.",
		},
		[]string{"method", "status"},
	)

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ambeauty",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ambeauty",
			Name:      "booking_status_total",
			Help:      "Count of admin booking status updates by target status.",
		},
		[]string{"status"},
	)

	reviewSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ambeauty",
			Name:      "review_submitted_total",
			Help:      "Count of reviews submitted by customers.",
		},
	)

	reviewDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ambeauty",
			Name:      "review_decision_total",
			Help:      "Count of admin moderation decisions over reviews.",
		},
		[]string{"decision"},
	)

	mediaUploaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ambeauty",
			Name:      "media_uploaded_total",
			Help:      "Count of gallery uploads by media type.",
		},
		[]string{"type"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingCreated, bookingStatus, reviewSubmitted, reviewDecision, mediaUploaded)
	})
}

func ObserveRequest(method string, status int) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingStatus(status string) {
	bookingStatus.WithLabelValues(status).Inc()
}

func IncReviewSubmitted() {
	reviewSubmitted.Inc()
}

func IncReviewDecision(decision string) {
	reviewDecision.WithLabelValues(decision).Inc()
}

func IncMediaUploaded(mediaType string) {
	mediaUploaded.WithLabelValues(mediaType).Inc()
}
