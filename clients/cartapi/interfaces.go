package cartapi

import "context"

// Request identifies whose cart to retrieve. Constructed fresh per fetch
// call; never retained by the transport.
type Request struct {
	UserID int
}

// CartItem is one record of the remote payload. The shape is owned by the
// remote endpoint, not by this module.
type CartItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Outcome is the result of a single transport attempt. Either OK with the
// raw payload, or a failure with a human-readable reason. Scoped to one
// attempt; callers must not hold on to it across attempts.
type Outcome struct {
	OK         bool
	StatusCode int
	Body       []byte
	Reason     string
}

// Transport performs one request against the remote cart endpoint.
// Implementations decide what counts as success: only an explicitly
// successful response (an OK status from the remote) yields OK=true,
// never merely "no error occurred".
type Transport interface {
	Perform(ctx context.Context, endpoint string, req Request) Outcome
}
