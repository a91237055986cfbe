package utils

import (
	"fmt"
	"time"
)

// Retry runs an operation up to MaxAttempts times with exponential back-off.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *Logger

	sleep func(time.Duration)
}

// Do executes fn until it succeeds or the attempts are exhausted.
func (r *Retry) Do(operation string, fn func() error) error {
	sleep := r.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := r.BaseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt < attempts {
			r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v, retrying in %v",
				operation, attempt, attempts, lastErr, delay)
			sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}
