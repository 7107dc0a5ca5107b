package fedex

import (
	"math"
	"math/rand"
	"time"
)

// RetryPolicy controls backoff between retry attempts.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration
	// Jitter spreads delays by +/-25% to avoid thundering herds.
	Jitter bool
}

// DefaultRetryPolicy returns the standard policy: 3 retries, 1s base, 10s cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   10 * time.Second,
		Jitter:     true,
	}
}

// Delay computes the backoff before the given retry attempt (1-based):
// min(base * 2^(attempt-1), max), with optional +/-25% jitter.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if p.Jitter {
		// Uniform in [0.75, 1.25).
		factor := 0.75 + rand.Float64()*0.5
		delay = time.Duration(float64(delay) * factor)
	}
	return delay
}
