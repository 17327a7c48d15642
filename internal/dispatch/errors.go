// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import "errors"

// User-visible messages for the two dispatch failure classes.
const (
	MsgTransport   = "Server error. Please try again."
	MsgEmptyResult = "Error fetching data"
)

var (
	// ErrTransport marks a failed round-trip: network error, non-2xx
	// status, a body that is not JSON, or a cancelled context.
	ErrTransport = errors.New("dispatch transport failure")

	// ErrEmptyResult marks a response that parsed but carries neither a
	// usable answer nor top_matches, or is not a JSON object.
	ErrEmptyResult = errors.New("dispatch returned no usable result")
)

// DispatchError is returned by Dispatch. Error() yields the message shown
// to the user; errors.Is matches ErrTransport or ErrEmptyResult, and the
// underlying cause (if any) stays reachable for logging.
type DispatchError struct {
	Kind  error
	Cause error
}

func (e *DispatchError) Error() string {
	if errors.Is(e.Kind, ErrEmptyResult) {
		return MsgEmptyResult
	}
	return MsgTransport
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *DispatchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func transportError(cause error) error {
	return &DispatchError{Kind: ErrTransport, Cause: cause}
}

func emptyResultError(cause error) error {
	return &DispatchError{Kind: ErrEmptyResult, Cause: cause}
}

// UserMessage returns the text to display for a dispatch error. Errors that
// did not come from Dispatch are reported as transport failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Error()
	}
	return MsgTransport
}
