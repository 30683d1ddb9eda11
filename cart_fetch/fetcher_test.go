package cart_fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/cartlab/cart-fetch/utils/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const cartBody = `[{"name":"apple","quantity":2},{"name":"milk","quantity":1}]`

func failedOutcome(reason string) cartapi.Outcome {
	return cartapi.Outcome{OK: false, StatusCode: 503, Reason: reason}
}

func successOutcome(body string) cartapi.Outcome {
	return cartapi.Outcome{OK: true, StatusCode: 200, Body: []byte(body)}
}

// newTestFetcher wires a fetcher with mocked transport and clock so no real
// I/O or waiting happens anywhere in this file.
func newTestFetcher(schedule []time.Duration) (*Fetcher, *cartapi.MockTransport, *clock.MockClock) {
	transport := cartapi.NewMockTransport()
	clk := clock.NewMockClock()
	clk.On("Sleep", mock.Anything).Return()

	fetcher := New(Options{
		Endpoint:  "http://cart.test/cart",
		Transport: transport,
		Schedule:  schedule,
		Clock:     clk,
	})
	return fetcher, transport, clk
}

// TestFetchSucceedsOnFirstAttempt verifies a first-attempt success performs
// exactly one transport call and zero waits.
func TestFetchSucceedsOnFirstAttempt(t *testing.T) {
	fetcher, transport, clk := newTestFetcher([]time.Duration{time.Second, 10 * time.Second})

	transport.On("Perform", mock.Anything, "http://cart.test/cart", cartapi.Request{UserID: 7}).
		Return(successOutcome(cartBody))

	items, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 7})

	assert.NoError(t, err)
	assert.Equal(t, []cartapi.CartItem{
		{Name: "apple", Quantity: 2},
		{Name: "milk", Quantity: 1},
	}, items)
	transport.AssertNumberOfCalls(t, "Perform", 1)
	assert.Empty(t, clk.SleptDurations(), "no waits on first-attempt success")
}

// TestFetchRetriesThenSucceeds verifies k failures followed by a success
// produce k+1 transport calls and the schedule's waits in order.
func TestFetchRetriesThenSucceeds(t *testing.T) {
	schedule := []time.Duration{time.Second, 5 * time.Second}
	fetcher, transport, clk := newTestFetcher(schedule)

	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(failedOutcome("unexpected status 503")).Twice()
	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(successOutcome(cartBody))

	items, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 7})

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	transport.AssertNumberOfCalls(t, "Perform", 3)
	assert.Equal(t, schedule, clk.SleptDurations(), "one wait per failed attempt, in schedule order")
}

// TestFetchExhaustsAllAttempts verifies that when every attempt fails the
// fetcher waits only between attempts, never after the last one, and raises
// an exhaustion error carrying the request context.
func TestFetchExhaustsAllAttempts(t *testing.T) {
	schedule := []time.Duration{time.Second, 5 * time.Second}
	fetcher, transport, clk := newTestFetcher(schedule)

	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(failedOutcome("transport error: connection refused"))

	items, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 9})

	assert.Nil(t, items)
	var exhausted *ExhaustedError
	assert.True(t, errors.As(err, &exhausted), "expected an exhaustion error, got %v", err)
	assert.Equal(t, 9, exhausted.UserID)
	assert.Equal(t, 3, exhausted.Attempts)
	transport.AssertNumberOfCalls(t, "Perform", 3)
	assert.Equal(t, schedule, clk.SleptDurations(), "no wait after the final attempt")
}

// TestFetchMalformedPayloadNotRetried verifies that a successful outcome with
// an unparsable body fails immediately even though schedule entries remain.
func TestFetchMalformedPayloadNotRetried(t *testing.T) {
	fetcher, transport, clk := newTestFetcher([]time.Duration{time.Second, 10 * time.Second, time.Minute})

	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(successOutcome(`{"oops": true}`))

	items, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 3})

	assert.Nil(t, items)
	var malformed *MalformedPayloadError
	assert.True(t, errors.As(err, &malformed), "expected a malformed-payload error, got %v", err)
	assert.Equal(t, 3, malformed.UserID)
	transport.AssertNumberOfCalls(t, "Perform", 1)
	assert.Empty(t, clk.SleptDurations())
}

// TestFetchIsIdempotent verifies two independent calls with the same scripted
// transport behavior produce the same outcome and the same number of calls.
func TestFetchIsIdempotent(t *testing.T) {
	schedule := []time.Duration{2 * time.Second}

	run := func() ([]cartapi.CartItem, error, int) {
		fetcher, transport, _ := newTestFetcher(schedule)
		transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
			Return(failedOutcome("unexpected status 500")).Once()
		transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
			Return(successOutcome(cartBody))

		items, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 5})
		calls := 0
		for _, call := range transport.Calls {
			if call.Method == "Perform" {
				calls++
			}
		}
		return items, err, calls
	}

	items1, err1, calls1 := run()
	items2, err2, calls2 := run()

	assert.Equal(t, items1, items2)
	assert.Equal(t, err1, err2)
	assert.Equal(t, calls1, calls2)
}

// TestFetchZeroLengthSchedule verifies an empty schedule is a valid
// configuration meaning a single attempt and no retry.
func TestFetchZeroLengthSchedule(t *testing.T) {
	fetcher, transport, clk := newTestFetcher(nil)

	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(failedOutcome("unexpected status 500"))

	_, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 1})

	var exhausted *ExhaustedError
	assert.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 1, exhausted.Attempts)
	transport.AssertNumberOfCalls(t, "Perform", 1)
	assert.Empty(t, clk.SleptDurations())
}

// TestScenarioBackoffScheduleHonored: schedule [1s,10s,60s], three failures
// then success -> 4 transport calls, waits [1s,10s,60s], items returned.
func TestScenarioBackoffScheduleHonored(t *testing.T) {
	schedule := []time.Duration{time.Second, 10 * time.Second, time.Minute}
	fetcher, transport, clk := newTestFetcher(schedule)

	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(failedOutcome("unexpected status 502")).Times(3)
	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(successOutcome(cartBody))

	items, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 11})

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	transport.AssertNumberOfCalls(t, "Perform", 4)
	assert.Equal(t, schedule, clk.SleptDurations())
}

// TestScenarioAllAttemptsFail: schedule [1s,10s,60s], all four attempts fail
// -> 4 transport calls, three waits (none after the last attempt), exhaustion.
func TestScenarioAllAttemptsFail(t *testing.T) {
	schedule := []time.Duration{time.Second, 10 * time.Second, time.Minute}
	fetcher, transport, clk := newTestFetcher(schedule)

	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(failedOutcome("unexpected status 502"))

	_, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 11})

	var exhausted *ExhaustedError
	assert.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 4, exhausted.Attempts)
	transport.AssertNumberOfCalls(t, "Perform", 4)
	assert.Equal(t, schedule, clk.SleptDurations())
}

// TestScenarioUnknownUser: a key the remote never recognizes keeps failing
// through the normal retry path and ends in exhaustion.
func TestScenarioUnknownUser(t *testing.T) {
	fetcher, transport, _ := newTestFetcher([]time.Duration{time.Second})

	transport.On("Perform", mock.Anything, mock.Anything, cartapi.Request{UserID: 404}).
		Return(failedOutcome("unexpected status 404"))

	_, err := fetcher.Fetch(context.Background(), cartapi.Request{UserID: 404})

	var exhausted *ExhaustedError
	assert.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 404, exhausted.UserID)
	transport.AssertNumberOfCalls(t, "Perform", 2)
}

// TestFetchScheduleCopiedAtConstruction verifies mutating the caller's slice
// after New does not change the configured policy.
func TestFetchScheduleCopiedAtConstruction(t *testing.T) {
	schedule := []time.Duration{time.Second}
	transport := cartapi.NewMockTransport()
	clk := clock.NewMockClock()
	clk.On("Sleep", mock.Anything).Return()

	fetcher := New(Options{
		Endpoint:  "http://cart.test/cart",
		Transport: transport,
		Schedule:  schedule,
		Clock:     clk,
	})
	schedule[0] = time.Hour

	transport.On("Perform", mock.Anything, mock.Anything, mock.Anything).
		Return(failedOutcome("unexpected status 500"))

	fetcher.Fetch(context.Background(), cartapi.Request{UserID: 1})

	assert.Equal(t, []time.Duration{time.Second}, clk.SleptDurations())
}
