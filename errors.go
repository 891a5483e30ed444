package casjobs

import (
	"errors"
	"fmt"

	"github.com/skyquery/casjobs/soap"
)

// Kind classifies a failed operation. Callers branch on it: transport
// failures are retryable at a higher layer, malformed responses are a
// service-compatibility problem, the other two are request-construction
// mistakes caught before or instead of a remote call.
type Kind int

const (
	// KindTransport means the remote exchange itself failed: network
	// error, non-success HTTP status, or a fault envelope.
	KindTransport Kind = iota + 1

	// KindMalformedResponse means the service was reachable but its
	// response lacked a field or shape required to build a result.
	KindMalformedResponse

	// KindInvalidFilterInput means a filter value contained a reserved
	// delimiter and would have compiled into an ambiguous condition.
	KindInvalidFilterInput

	// KindPreconditionNotMet means the operation was refused locally,
	// e.g. cancelling a job already past the cancelable states.
	KindPreconditionNotMet
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport failure"
	case KindMalformedResponse:
		return "malformed response"
	case KindInvalidFilterInput:
		return "invalid filter input"
	case KindPreconditionNotMet:
		return "precondition not met"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single failure type returned by this package.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := "casjobs: " + e.Op + ": " + e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, or zero if err is not a casjobs
// error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func failf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// wireErr maps a transport error onto an error kind: a body the transport
// could not decode means the service returned garbage, everything else is
// an exchange failure.
func wireErr(op string, err error) *Error {
	var decode *soap.DecodeError
	if errors.As(err, &decode) {
		return &Error{Kind: KindMalformedResponse, Op: op, Err: err}
	}
	return &Error{Kind: KindTransport, Op: op, Err: err}
}
