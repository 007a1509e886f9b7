package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies provider and routing failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindParse
	KindAddressNotFound
	KindInvalidAddressID
	KindUnsupportedCity
	KindUnknownFraction
	KindInternal
	KindInvalidRange
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindParse:
		return "parse error"
	case KindAddressNotFound:
		return "address not found"
	case KindInvalidAddressID:
		return "invalid address identifier"
	case KindUnsupportedCity:
		return "unsupported city"
	case KindUnknownFraction:
		return "unknown fraction"
	case KindInternal:
		return "internal error"
	case KindInvalidRange:
		return "invalid date range"
	default:
		return "unknown error"
	}
}

// Sentinels for errors.Is. Any *Error with the same Kind matches.
var (
	ErrNetwork          = &Error{Kind: KindNetwork}
	ErrParse            = &Error{Kind: KindParse}
	ErrAddressNotFound  = &Error{Kind: KindAddressNotFound}
	ErrInvalidAddressID = &Error{Kind: KindInvalidAddressID}
	ErrUnsupportedCity  = &Error{Kind: KindUnsupportedCity}
	ErrUnknownFraction  = &Error{Kind: KindUnknownFraction}
	ErrInternal         = &Error{Kind: KindInternal}
	ErrInvalidRange     = &Error{Kind: KindInvalidRange}
)

// Error is a failure tagged with its Kind.
// Status carries the HTTP status code for KindNetwork errors caused by a
// non-2xx backend response; it is 0 for transport failures.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: backend status %d", msg, e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a tagged error with a detail message.
func New(kind Kind, op, detail string) error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Wrap tags err with kind. A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Status creates a KindNetwork error for a non-2xx backend response.
func Status(op string, code int) error {
	return &Error{Kind: KindNetwork, Op: op, Status: code}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf returns the backend HTTP status attached to err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsTransient reports whether err is a network failure worth retrying:
// a transport error, a 5xx or a 429 response.
func IsTransient(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindNetwork {
		return false
	}
	return e.Status == 0 || e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}
