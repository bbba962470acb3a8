package client

import (
	"errors"
	"fmt"
)

// Kind classifies why a CoA exchange failed
type Kind int

const (
	// KindValidation covers missing or malformed input: NAS address, secret, attribute set
	KindValidation Kind = iota + 1
	// KindEncoding covers attributes that cannot be put on the wire
	KindEncoding
	// KindTransport covers socket errors, cancellation and responses that fail verification
	KindTransport
	// KindTimeout is an exchange that got no response in time
	KindTimeout
	// KindRejected is a CoA-NAK when strict acknowledgement is enabled
	KindRejected
)

// String returns the label used in logs and metrics
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindEncoding:
		return "encoding"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindRejected:
		return "rejected"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is returned by Exchange and carried by failed Results
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a client error, 0 for other errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsTimeout reports whether err is a client timeout
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}
