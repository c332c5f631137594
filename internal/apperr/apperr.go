// README: Error taxonomy shared by every module; handlers map kinds to HTTP statuses.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

type Kind string

const (
	KindInvalidInput    Kind = "InvalidInput"
	KindNotFound        Kind = "NotFound"
	KindNoAirport       Kind = "NoAirport"
	KindNoResults       Kind = "NoResults"
	KindUpstreamFailure Kind = "UpstreamFailure"
	KindUpstreamTimeout Kind = "UpstreamTimeout"
	// KindInternal is a fault of this service, such as a recovered panic.
	KindInternal        Kind = "Internal"
)

// Sentinels for errors.Is; an *Error matches the sentinel of its kind.
var (
	ErrInvalidInput    = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
	ErrNoAirport       = &Error{Kind: KindNoAirport, Message: "no airport"}
	ErrNoResults       = &Error{Kind: KindNoResults, Message: "no results"}
	ErrUpstreamFailure = &Error{Kind: KindUpstreamFailure, Message: "upstream failure"}
	ErrUpstreamTimeout = &Error{Kind: KindUpstreamTimeout, Message: "upstream timeout"}
	ErrInternal        = &Error{Kind: KindInternal, Message: "internal error"}
)

// Error is a classified failure. UpstreamStatus carries the third-party HTTP
// status when one was received.
type Error struct {
	Kind           Kind
	Message        string
	UpstreamStatus int
	cause          error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A *url.Error cause is replaced by its inner error so
// request URLs, which may carry API keys, never reach messages or logs.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: withoutURL(err)}
}

func withoutURL(err error) error {
	var urlErr *url.Error
	if err == nil || !errors.As(err, &urlErr) {
		return err
	}
	return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
}

func InvalidInput(format string, args ...any) *Error {
	return New(KindInvalidInput, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func NoAirport(city string) *Error {
	return New(KindNoAirport, "no airport found for %q", city)
}

func NoResults(format string, args ...any) *Error {
	return New(KindNoResults, format, args...)
}

// UpstreamStatus reports a non-success HTTP status from a third-party service.
func UpstreamStatus(upstream string, status int) *Error {
	return &Error{
		Kind:           KindUpstreamFailure,
		Message:        fmt.Sprintf("%s returned status %d", upstream, status),
		UpstreamStatus: status,
	}
}

// FromTransport classifies an error returned by an outbound call. Deadline
// expiries become UpstreamTimeout, everything else UpstreamFailure. Errors that
// are already classified pass through untouched.
func FromTransport(upstream string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	if IsTimeout(err) {
		return Wrap(err, KindUpstreamTimeout, upstream+" timed out")
	}
	return Wrap(err, KindUpstreamFailure, upstream+" request failed")
}

// IsTimeout reports whether err is a context deadline or a network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// KindOf returns the kind of a classified error, or UpstreamFailure for
// anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstreamFailure
}

// PublicMessage is the client-facing text of err: the message of its
// classified error without the cause chain.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// UpstreamStatusOf returns the recorded third-party status, or 0.
func UpstreamStatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.UpstreamStatus
	}
	return 0
}
