package providers

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

// UserMessage is the user-facing text shown for any catalog retrieval failure.
const UserMessage = "Unable to load games. Please try again later."

// ErrProviderUnavailable signals the provider could not be reached at all.
var ErrProviderUnavailable = errors.New("provider unavailable")

// StatusError captures a non-200 upstream response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// FetchError wraps any network, timeout, status or decoding failure that
// happened while retrieving a jurisdiction's catalog.
type FetchError struct {
	Jurisdiction jurisdiction.Code
	Err          error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch games for %s: %v", e.Jurisdiction, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage returns the text to surface next to a retry action.
func (e *FetchError) UserMessage() string {
	return UserMessage
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
