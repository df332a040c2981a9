package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObserveDecision("quote", true)
	r.ObserveDecision("quote", true)
	r.ObserveDecision("comment", false)
	r.ObserveRating(SourceStructured, 20*time.Millisecond)
	r.ObserveRating(SourceUnavailable, time.Second)
	r.ObserveCache(CacheHit)
	r.ObserveCounterUpdate(nil)
	r.ObserveCounterUpdate(errors.New("boom"))
	r.SetCircuitState("rating-oracle", 1)

	assert.InDelta(t, 2, testutil.ToFloat64(r.decisions.WithLabelValues("quote", "true")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.decisions.WithLabelValues("comment", "false")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ratings.WithLabelValues(SourceUnavailable)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.cacheEvents.WithLabelValues(CacheHit)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.counterUpdates.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.counterUpdates.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.circuitState.WithLabelValues("rating-oracle")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveDecision("quote", true)
		r.ObserveRating(SourceDefault, time.Millisecond)
		r.ObserveCache(CacheMiss)
		r.ObserveCounterUpdate(nil)
		r.SetCircuitState("rating-oracle", 0)
	})
}

func TestNew_PanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
