package devicecode

import (
	"context"
	"sync"
	"time"
)

// Exchange is a handle to a device-code grant running in the background.
type Exchange struct {
	started time.Time
	done    chan struct{}

	mu  sync.Mutex
	err error
}

func newExchange(started time.Time) *Exchange {
	return &Exchange{
		started: started,
		done:    make(chan struct{}),
	}
}

// StartedAt returns the time the exchange was started.
func (x *Exchange) StartedAt() time.Time {
	return x.started
}

// Done is closed when the exchange has finished.
func (x *Exchange) Done() <-chan struct{} {
	return x.done
}

// Err returns the outcome of a finished exchange.  It returns nil while the
// exchange is pending.
func (x *Exchange) Err() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.err
}

// Pending reports whether the exchange is still running.
func (x *Exchange) Pending() bool {
	select {
	case <-x.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the exchange finishes or ctx is done.  It returns the
// exchange error, or the context error if ctx ended first.
func (x *Exchange) Wait(ctx context.Context) error {
	select {
	case <-x.done:
		return x.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (x *Exchange) finish(err error) {
	x.mu.Lock()
	x.err = err
	x.mu.Unlock()
	close(x.done)
}
