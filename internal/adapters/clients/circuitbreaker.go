package clients

import (
	"sync"
	"time"
)

// State is a circuit breaker state.
type State int

// Breaker states. The numeric values are exported as the circuit state gauge.
const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker. Limits below one are
// raised to one.
type CircuitBreakerConfig struct {
	// MaxFailures consecutive failures open the breaker.
	MaxFailures int

	// Timeout is how long the breaker stays open before letting trial requests through.
	Timeout time.Duration

	// HalfOpenLimit is both the number of trial requests allowed in flight
	// and the number of consecutive trial successes that close the breaker.
	HalfOpenLimit int
}

// CircuitBreaker stops calls to a downstream that keeps failing.
//
// Closed counts consecutive failures and opens at MaxFailures. Open refuses
// calls until Timeout has passed since it opened, then moves to half-open and
// admits trial requests. Any trial failure reopens it.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    State
	streak   int // failures while closed, successes while half-open
	trials   int // trials in flight while half-open
	openedAt time.Time
	listener func(from, to State)
	queue    []transition

	// delivering keeps listener calls in transition order.
	delivering sync.Mutex
}

type transition struct {
	from, to State
}

// NewCircuitBreaker returns a closed breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn for state transitions. fn runs outside the
// breaker lock on the goroutine that caused the transition, so it may call
// back into the breaker.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.listener = fn
	cb.mu.Unlock()
}

// Allow reports whether a call may proceed. Every true result must be
// followed by RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	defer cb.flush()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false
		}

		cb.moveTo(StateHalfOpen)
		cb.trials = 1

		return true
	case StateHalfOpen:
		if cb.trials >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.trials++

		return true
	}

	return false
}

// RecordSuccess reports a call that reached a healthy downstream.
func (cb *CircuitBreaker) RecordSuccess() {
	defer cb.flush()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.streak = 0
	case StateHalfOpen:
		cb.trials--
		cb.streak++

		if cb.streak >= cb.cfg.HalfOpenLimit {
			cb.moveTo(StateClosed)
		}
	}
}

// RecordFailure reports a failed call.
func (cb *CircuitBreaker) RecordFailure() {
	defer cb.flush()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.streak++

		if cb.streak >= cb.cfg.MaxFailures {
			cb.moveTo(StateOpen)
		}
	case StateHalfOpen:
		cb.trials--
		cb.moveTo(StateOpen)
	}
}

// State returns the current state without advancing it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// moveTo requires cb.mu.
func (cb *CircuitBreaker) moveTo(to State) {
	from := cb.state
	if from == to {
		return
	}

	cb.state = to
	cb.streak = 0

	if to == StateOpen {
		cb.openedAt = cb.now()
		cb.trials = 0
	}

	if cb.listener != nil {
		cb.queue = append(cb.queue, transition{from: from, to: to})
	}
}

// flush hands queued transitions to the listener. It must run without cb.mu.
func (cb *CircuitBreaker) flush() {
	cb.delivering.Lock()
	defer cb.delivering.Unlock()

	cb.mu.Lock()
	queue, fn := cb.queue, cb.listener
	cb.queue = nil
	cb.mu.Unlock()

	for _, t := range queue {
		fn(t.from, t.to)
	}
}
