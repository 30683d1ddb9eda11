// Package cart_fetch retrieves a user's shopping cart from a remote endpoint
// with a bounded retry-and-backoff policy.
//
// The package supports:
//   - A caller-configured backoff schedule, one wait per failed attempt
//   - An injected Transport so the retry policy is testable without real I/O
//   - An injected Clock so tests can assert on waits without real delays
//   - Distinguishable exhaustion and malformed-payload errors
//
// Basic Usage:
//
//	fetcher := cart_fetch.New(cart_fetch.Options{
//	    Endpoint:  "http://localhost:8080/cart",
//	    Transport: cartapi.NewHTTPTransport(),
//	    Schedule:  []time.Duration{1 * time.Second, 10 * time.Second, 60 * time.Second},
//	})
//
//	items, err := fetcher.Fetch(ctx, cartapi.Request{UserID: 42})
//
// Retry semantics:
//
// The schedule holds one wait per failed attempt, so a schedule of length k
// allows k+1 attempts in total. Waits are consumed left to right and never
// reused; there is no wait after the final attempt. A success on any attempt
// returns immediately and discards the remaining schedule. An empty schedule
// is valid and means a single attempt with no retry.
//
// Error contract:
//
// Intermediate attempt failures are logged but never surfaced. Only two
// errors cross the package boundary: *ExhaustedError when every attempt
// failed, and *MalformedPayloadError when the remote reported success but
// the body could not be parsed. Malformed payloads are never retried since
// retrying cannot fix a parsing defect.
package cart_fetch
