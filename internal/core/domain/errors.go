package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork covers transport failures, bad statuses and malformed
	// upstream responses at any stage.
	KindNetwork
	// KindNotFound means the destination address could not be resolved.
	KindNotFound
	// KindRouteNotFound means no path exists between the two points.
	KindRouteNotFound
	// KindInvalid means the request itself was rejected before any call.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	case KindRouteNotFound:
		return "route_not_found"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a *Error of the same kind.
var (
	ErrNetwork       = errors.New("network error")
	ErrNotFound      = errors.New("address not found")
	ErrRouteNotFound = errors.New("route not found")
	ErrInvalid       = errors.New("invalid request")
)

// Error is the typed error returned by every pipeline stage.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.sentinel())
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel that corresponds to the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNetwork:
		return ErrNetwork
	case KindNotFound:
		return ErrNotFound
	case KindRouteNotFound:
		return ErrRouteNotFound
	case KindInvalid:
		return ErrInvalid
	default:
		return nil
	}
}

// NetworkError wraps err as a KindNetwork failure of op.
func NetworkError(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// NotFoundError reports that op could not resolve its input.
func NotFoundError(op string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

// RouteNotFoundError reports that op found no path.
func RouteNotFoundError(op string, err error) error {
	return &Error{Kind: KindRouteNotFound, Op: op, Err: err}
}

// InvalidError reports a rejected request.
func InvalidError(op string, err error) error {
	return &Error{Kind: KindInvalid, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// OpOf returns the operation of the innermost *Error in err's chain, which
// names the provider call that failed.
func OpOf(err error) string {
	var op string
	for err != nil {
		if e, ok := err.(*Error); ok {
			op = e.Op
		}
		err = errors.Unwrap(err)
	}
	return op
}
