package cart_fetch

import "fmt"

// ExhaustedError reports that every configured attempt failed. It carries
// the requested user id and the number of attempts made so callers can log
// or alert with context.
type ExhaustedError struct {
	UserID   int
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("cart fetch for user %d exhausted after %d attempts", e.UserID, e.Attempts)
}

// MalformedPayloadError reports that the remote endpoint returned success
// but the body could not be parsed into cart items. Never retried.
type MalformedPayloadError struct {
	UserID int
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed cart payload for user %d: %v", e.UserID, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}
