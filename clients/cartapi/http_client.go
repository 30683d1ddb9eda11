package cartapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// HTTPTransport performs cart requests over HTTP. A 200 response is the only
// outcome treated as success; every other status and any transport-level
// error becomes a failure outcome for the caller's retry policy to handle.
type HTTPTransport struct {
	client *http.Client
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport with a default 10s request timeout
func NewHTTPTransport() *HTTPTransport {
	return NewHTTPTransportWithClient(&http.Client{
		Timeout: 10 * time.Second,
	})
}

// NewHTTPTransportWithClient creates a transport using a caller-provided
// http.Client, e.g. to control timeouts or reuse connection pools.
func NewHTTPTransportWithClient(client *http.Client) *HTTPTransport {
	return &HTTPTransport{
		client: client,
	}
}

// Perform issues a single GET against endpoint with the user id as a query
// parameter and reads the full body.
func (t *HTTPTransport) Perform(ctx context.Context, endpoint string, req Request) Outcome {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Outcome{Reason: fmt.Sprintf("building request: %v", err)}
	}

	query := httpReq.URL.Query()
	query.Set("uid", strconv.Itoa(req.UserID))
	httpReq.URL.RawQuery = query.Encode()

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Outcome{Reason: fmt.Sprintf("transport error: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("reading body: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return Outcome{
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	return Outcome{OK: true, StatusCode: resp.StatusCode, Body: body}
}
