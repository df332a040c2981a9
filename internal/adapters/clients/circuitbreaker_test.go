package clients

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a breaker without sleeping.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(maxFailures, halfOpenLimit int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   maxFailures,
		Timeout:       30 * time.Second,
		HalfOpenLimit: halfOpenLimit,
	})
	cb.now = clock.now

	return cb, clock
}

func TestNewCircuitBreaker_RaisesLimits(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 1, cb.cfg.MaxFailures)
	assert.Equal(t, 1, cb.cfg.HalfOpenLimit)

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess() // streak broken
	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_TrialsAfterTimeout(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.RecordFailure()
	clock.advance(29 * time.Second)
	assert.False(t, cb.Allow(), "still cooling down")

	clock.advance(time.Second)
	assert.True(t, cb.Allow(), "first trial")
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.True(t, cb.Allow(), "second trial")
	assert.False(t, cb.Allow(), "trial limit reached")

	cb.RecordSuccess()
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.True(t, cb.Allow(), "slot freed by finished trial")

	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_TrialFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, 2)

	cb.RecordFailure()
	clock.advance(30 * time.Second)
	require.True(t, cb.Allow())

	clock.advance(5 * time.Second)
	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())

	// the cool-down restarts from the reopen
	clock.advance(25 * time.Second)
	assert.False(t, cb.Allow())

	clock.advance(5 * time.Second)
	assert.True(t, cb.Allow())
}

func TestCircuitBreaker_ClosedAfterRecoveryCountsAfresh(t *testing.T) {
	cb, clock := newTestBreaker(2, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	clock.advance(30 * time.Second)
	require.True(t, cb.Allow())
	cb.RecordSuccess()
	require.Equal(t, StateClosed, cb.State())

	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State(), "failures before opening are forgotten")
}

func TestCircuitBreaker_ListenerSeesTransitionsInOrder(t *testing.T) {
	cb, clock := newTestBreaker(1, 1)

	var got []transition
	cb.OnStateChange(func(from, to State) {
		got = append(got, transition{from, to})
		assert.Equal(t, to, cb.State(), "listener may read the breaker")
	})

	cb.RecordFailure()
	clock.advance(30 * time.Second)
	require.True(t, cb.Allow())
	cb.RecordFailure()
	clock.advance(30 * time.Second)
	require.True(t, cb.Allow())
	cb.RecordSuccess()

	assert.Equal(t, []transition{
		{StateClosed, StateOpen},
		{StateOpen, StateHalfOpen},
		{StateHalfOpen, StateOpen},
		{StateOpen, StateHalfOpen},
		{StateHalfOpen, StateClosed},
	}, got)
}

func TestCircuitBreaker_ConcurrentUse(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 50, Timeout: time.Millisecond, HalfOpenLimit: 5})

	var transitions sync.Map

	cb.OnStateChange(func(from, to State) { transitions.Store(transition{from, to}, true) })

	var wg sync.WaitGroup

	for i := range 500 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if !cb.Allow() {
				return
			}

			if i%3 == 0 {
				cb.RecordFailure()
			} else {
				cb.RecordSuccess()
			}
		}()
	}

	wg.Wait()

	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, cb.State())

	transitions.Range(func(k, _ any) bool {
		tr := k.(transition)
		assert.NotEqual(t, tr.from, tr.to)

		return true
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(7).String())
}
