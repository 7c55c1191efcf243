package reviewboard

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	// KindConnection means no HTTP response was received.
	KindConnection ErrorKind = iota + 1
	// KindNotFound is a 404 response.
	KindNotFound
	// KindStatus is any other non-2xx response.
	KindStatus
	// KindDecode means the listing body could not be parsed.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindNotFound:
		return "not found"
	case KindStatus:
		return "http status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by Client methods for any failed request.
type Error struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound, KindStatus:
		return fmt.Sprintf("%d %s for url: %s", e.StatusCode, statusText(e.StatusCode), e.URL)
	case KindDecode:
		return fmt.Sprintf("invalid response from %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var rbErr *Error
	if errors.As(err, &rbErr) {
		return rbErr.Kind
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
