package core

// export_limiter.go bounds how many PDF exports render at once.
//
// Each export holds a render pipeline and a socket for as long as the client
// downloads, so the limiter caps parallel exports with a semaphore. When all
// slots are taken a new export waits up to maxWait and then fails with
// ErrTooManyExports. WaitForDrain lets shutdown block until in-flight
// exports finish.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyExports is returned when no export slot frees up within the wait timeout.
var ErrTooManyExports = errors.New("too many exports in progress, please try again later")

// DefaultMaxConcurrentExports is used when the configured limit is not positive.
const DefaultMaxConcurrentExports = 4

// DefaultExportWait is used when the configured wait is not positive.
const DefaultExportWait = 10 * time.Second

// ExportLimiter is a counting semaphore for export renders.
type ExportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewExportLimiter allows at most maxConcurrent exports, each waiting up to maxWait for a slot.
func NewExportLimiter(maxConcurrent int, maxWait time.Duration) *ExportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentExports
	}
	if maxWait <= 0 {
		maxWait = DefaultExportWait
	}
	return &ExportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to maxWait. The caller must Release on success.
func (l *ExportLimiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	default:
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyExports
	}
}

// Release frees a slot taken by Acquire.
func (l *ExportLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of exports currently holding a slot.
func (l *ExportLimiter) Active() int {
	return int(l.active.Load())
}

// Capacity returns the configured maximum.
func (l *ExportLimiter) Capacity() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no export is active or ctx ends.
func (l *ExportLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// ExportLimiterStatus is a monitoring snapshot.
type ExportLimiterStatus struct {
	Active    int `json:"active"`
	Available int `json:"available"`
	Capacity  int `json:"capacity"`
}

// Status returns the limiter's current state.
func (l *ExportLimiter) Status() ExportLimiterStatus {
	return ExportLimiterStatus{
		Active:    l.Active(),
		Available: cap(l.slots) - len(l.slots),
		Capacity:  cap(l.slots),
	}
}
