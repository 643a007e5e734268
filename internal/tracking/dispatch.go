package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single background Track call.
const DefaultTimeout = 2 * time.Second

// Dispatcher fires Track calls without blocking the caller.
type Dispatcher struct {
	tracker Tracker
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps t. A non-positive timeout falls back to DefaultTimeout.
func NewDispatcher(t Tracker, timeout time.Duration) *Dispatcher {
	if t == nil {
		t = Noop{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{tracker: t, timeout: timeout}
}

// Tracker returns the wrapped tracker.
func (d *Dispatcher) Tracker() Tracker { return d.tracker }

// Dispatch records term in the background. Blank terms are skipped. Errors
// are logged at warn and counted; they never reach the caller.
func (d *Dispatcher) Dispatch(term string) {
	term = Normalize(term)
	if term == "" {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.tracker.Track(ctx, term); err != nil {
			trackFailures.Inc()
			log.Warn().Err(err).Str("term", term).Msg("search term tracking failed")
			return
		}
		termsTracked.Inc()
	}()
}

// Wait blocks until every dispatched call has finished. Used on shutdown
// and in tests.
func (d *Dispatcher) Wait() { d.wg.Wait() }
