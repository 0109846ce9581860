package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrBreakerOpen = errors.New("circuit breaker is open")

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	Cooldown         time.Duration
	HalfOpenProbes   int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		Cooldown:         15 * time.Second,
		HalfOpenProbes:   2,
	}
}

func NormalizeBreakerConfig(cfg BreakerConfig) BreakerConfig {
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaults.Cooldown
	}
	if cfg.HalfOpenProbes < 1 {
		cfg.HalfOpenProbes = defaults.HalfOpenProbes
	}
	return cfg
}

// Breaker protects a dependency with a consecutive-failure circuit.
// After FailureThreshold failures in a row the circuit opens for Cooldown;
// it then admits up to HalfOpenProbes requests and closes again only when
// all probes succeed.
type Breaker struct {
	mu sync.Mutex

	failureThreshold int
	cooldown         time.Duration
	halfOpenProbes   int

	state           BreakerState
	failures        int
	openedAt        time.Time
	probesInFlight  int
	probesSucceeded int
	now             func() time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	cfg = NormalizeBreakerConfig(cfg)
	return &Breaker{
		failureThreshold: cfg.FailureThreshold,
		cooldown:         cfg.Cooldown,
		halfOpenProbes:   cfg.HalfOpenProbes,
		state:            BreakerClosed,
		now:              time.Now,
	}
}

func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.state == BreakerOpen {
		if now.Sub(b.openedAt) < b.cooldown {
			return ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
		b.probesInFlight = 0
		b.probesSucceeded = 0
	}

	if b.state == BreakerHalfOpen {
		if b.probesInFlight >= b.halfOpenProbes {
			return ErrBreakerOpen
		}
		b.probesInFlight++
	}

	return nil
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.probesSucceeded++
		if b.probesSucceeded >= b.halfOpenProbes && b.probesInFlight == 0 {
			b.state = BreakerClosed
			b.failures = 0
			b.openedAt = time.Time{}
		}
	}
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.open()
		}
	case BreakerHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.open()
	case BreakerOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		return BreakerHalfOpen
	}

	return b.state
}

func (b *Breaker) open() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.probesInFlight = 0
	b.probesSucceeded = 0
}
