package cart_fetch

import (
	"context"
	"time"

	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/cartlab/cart-fetch/utils/clock"
	"github.com/cartlab/cart-fetch/utils/logger"
	"github.com/google/uuid"
)

// Fetcher retrieves cart data from a remote endpoint with a bounded
// retry-and-backoff policy. The transport and the sleep capability are
// injected so the policy is testable without real I/O or real waits.
//
// A Fetcher holds no mutable state between calls; each Fetch runs the full
// schedule from the start and independent calls may run concurrently.
type Fetcher struct {
	endpoint  string
	transport cartapi.Transport
	schedule  []time.Duration
	clock     clock.Clock
	logger    logger.Logger
}

// Options configures a Fetcher. Transport and Endpoint are required;
// Schedule may be empty (a single attempt, no retry); Clock and Logger
// default to the real clock and a noop logger.
type Options struct {
	Endpoint  string
	Transport cartapi.Transport
	Schedule  []time.Duration
	Clock     clock.Clock
	Logger    logger.Logger
}

// New creates a Fetcher. The schedule is copied so later mutation of the
// caller's slice cannot change the policy.
func New(opts Options) *Fetcher {
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoopLogger()
	}

	schedule := make([]time.Duration, len(opts.Schedule))
	copy(schedule, opts.Schedule)

	return &Fetcher{
		endpoint:  opts.Endpoint,
		transport: opts.Transport,
		schedule:  schedule,
		clock:     opts.Clock,
		logger:    opts.Logger,
	}
}

// Fetch attempts to retrieve the cart up to len(schedule)+1 times, sleeping
// for the next schedule entry after each failed attempt. It returns the
// parsed items on the first successful attempt, a *MalformedPayloadError if
// a successful response cannot be parsed, or a *ExhaustedError once every
// attempt has failed.
func (f *Fetcher) Fetch(ctx context.Context, req cartapi.Request) ([]cartapi.CartItem, error) {
	fetchID := uuid.New().String()[:6]
	attempts := len(f.schedule) + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		outcome := f.transport.Perform(ctx, f.endpoint, req)
		if outcome.OK {
			items, err := decodeCart(outcome.Body)
			if err != nil {
				// Retrying cannot fix a parsing defect
				return nil, &MalformedPayloadError{UserID: req.UserID, Err: err}
			}

			f.logger.Printf("fetch %s: user %d succeeded on attempt %d/%d (%d items)",
				fetchID, req.UserID, attempt, attempts, len(items))
			return items, nil
		}

		f.logger.Printf("fetch %s: user %d attempt %d/%d failed: %s",
			fetchID, req.UserID, attempt, attempts, outcome.Reason)

		// No wait after the final attempt
		if attempt <= len(f.schedule) {
			f.clock.Sleep(f.schedule[attempt-1])
		}
	}

	return nil, &ExhaustedError{UserID: req.UserID, Attempts: attempts}
}
