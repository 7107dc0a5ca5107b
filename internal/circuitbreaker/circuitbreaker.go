// Package circuitbreaker guards the carrier API endpoint: repeated
// failures trip the circuit so the service stops hammering a carrier
// outage and recovers via a half-open probe.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned when the circuit is open and calls are
// rejected without touching the carrier.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State of the breaker.
type State int

const (
	// StateClosed passes calls through normally.
	StateClosed State = iota
	// StateOpen rejects calls immediately.
	StateOpen
	// StateHalfOpen allows probe calls to test recovery.
	StateHalfOpen
)

// String returns the state name for health reporting and logs.
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

// Config holds breaker thresholds.
type Config struct {
	// Name identifies the guarded dependency in logs and health checks.
	Name string
	// FailureThreshold is the consecutive-failure count that opens the circuit.
	FailureThreshold int
	// SuccessThreshold is the consecutive-success count that closes it again.
	SuccessThreshold int
	// CoolDown is how long the circuit stays open before half-opening.
	CoolDown time.Duration
}

// DefaultConfig returns the thresholds used for the carrier endpoint.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		CoolDown:         30 * time.Second,
	}
}

// CircuitBreaker tracks consecutive failures of one dependency.
type CircuitBreaker struct {
	cfg Config

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	openedAt    time.Time
	lastFailure time.Time
}

// New creates a breaker in the closed state.
func New(cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.CoolDown <= 0 {
		cfg.CoolDown = 30 * time.Second
	}
	return &CircuitBreaker{cfg: cfg}
}

// Execute runs fn under the breaker. It returns ErrCircuitOpen without
// calling fn when the circuit is open and the cool-down has not elapsed.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := fn()
	cb.after(err)
	return err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if time.Since(cb.openedAt) < cb.cfg.CoolDown {
			return ErrCircuitOpen
		}
		cb.state = StateHalfOpen
		cb.successes = 0
		log.Info().Str("breaker", cb.cfg.Name).Msg("Circuit breaker half-open; probing")
	}
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		// A half-open probe failure reopens immediately.
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			if cb.state != StateOpen {
				log.Warn().
					Str("breaker", cb.cfg.Name).
					Int("failures", cb.failures).
					Msg("Circuit breaker opened")
			}
			cb.state = StateOpen
			cb.openedAt = time.Now()
		}
		return
	}

	cb.failures = 0
	if cb.state == StateHalfOpen {
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.state = StateClosed
			cb.successes = 0
			log.Info().Str("breaker", cb.cfg.Name).Msg("Circuit breaker closed after recovery")
		}
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Healthy reports whether the guarded dependency is usable.
func (cb *CircuitBreaker) Healthy() bool {
	return cb.State() != StateOpen
}

// LastFailure returns the time of the most recent failure.
func (cb *CircuitBreaker) LastFailure() time.Time {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.lastFailure
}
