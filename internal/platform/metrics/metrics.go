// Package metrics holds the Prometheus collectors for moderation outcomes.
//
// HTTP and client latency are covered by OpenTelemetry in the telemetry
// package; these counters track business events that dashboards and alerts
// key on. A nil *Recorder is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quoteboard"

// Rating sources reported by ObserveRating.
const (
	SourceStructured  = "structured"
	SourceLabeled     = "labeled_field"
	SourceRatingWord  = "rating_word"
	SourceOutOfFive   = "out_of_five"
	SourceDefault     = "default"
	SourceUnavailable = "unavailable"
	SourceCache       = "cache"
)

// Cache events reported by ObserveCache.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheSet   = "set"
	CacheError = "error"
)

// Recorder owns the moderation collectors.
type Recorder struct {
	decisions      *prometheus.CounterVec
	ratings        *prometheus.CounterVec
	ratingLatency  *prometheus.HistogramVec
	cacheEvents    *prometheus.CounterVec
	counterUpdates *prometheus.CounterVec
	circuitState   *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
// It panics on duplicate registration, like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Name: "moderation_decisions_total",
				Help: "Moderation decisions by content kind and outcome.",
			},
			[]string{"kind", "published"},
		),
		ratings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Name: "ratings_total",
				Help: "Ratings by the parse path or fallback that produced them.",
			},
			[]string{"source"},
		),
		ratingLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "rating_duration_seconds",
				Help:    "Time spent producing a rating, including oracle calls.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Name: "rating_cache_events_total",
				Help: "Rating cache hits, misses, sets and errors.",
			},
			[]string{"event"},
		),
		counterUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Name: "comment_counter_updates_total",
				Help: "Best-effort comment counter increments by result.",
			},
			[]string{"result"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace, Name: "downstream_circuit_state",
				Help: "Circuit breaker state per downstream (0 closed, 1 open, 2 half-open).",
			},
			[]string{"downstream"},
		),
	}

	reg.MustRegister(r.decisions, r.ratings, r.ratingLatency, r.cacheEvents, r.counterUpdates, r.circuitState)

	return r
}

// ObserveDecision counts a publish decision.
func (r *Recorder) ObserveDecision(kind string, published bool) {
	if r == nil {
		return
	}

	r.decisions.WithLabelValues(kind, strconv.FormatBool(published)).Inc()
}

// ObserveRating counts a rating and how long it took.
func (r *Recorder) ObserveRating(source string, d time.Duration) {
	if r == nil {
		return
	}

	r.ratings.WithLabelValues(source).Inc()
	r.ratingLatency.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveCache counts a rating cache event.
func (r *Recorder) ObserveCache(event string) {
	if r == nil {
		return
	}

	r.cacheEvents.WithLabelValues(event).Inc()
}

// ObserveCounterUpdate counts a comment counter increment attempt.
func (r *Recorder) ObserveCounterUpdate(err error) {
	if r == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	r.counterUpdates.WithLabelValues(result).Inc()
}

// SetCircuitState records the breaker state of a downstream service.
func (r *Recorder) SetCircuitState(downstream string, state int) {
	if r == nil {
		return
	}

	r.circuitState.WithLabelValues(downstream).Set(float64(state))
}
