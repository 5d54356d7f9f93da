// Package common defines shared constants, sentinel errors and the kinded
// domain error used across finkeeper layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorMissingID     = errors.New("missing id")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Kind sentinels. A *Error matches exactly one of them through errors.Is.
var (
	ErrBusinessRule = errors.New("business rule violation")
	ErrAuth         = errors.New("authentication error")
	ErrStorage      = errors.New("storage error")
	ErrPrecondition = errors.New("precondition failed")
)

// Kind classifies a domain failure.
type Kind int

const (
	KindBusinessRule Kind = iota + 1
	KindAuth
	KindStorage
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindBusinessRule:
		return "business_rule"
	case KindAuth:
		return "auth"
	case KindStorage:
		return "storage"
	case KindPrecondition:
		return "precondition"
	}
	return "unknown"
}

func (k Kind) sentinel() error {
	switch k {
	case KindBusinessRule:
		return ErrBusinessRule
	case KindAuth:
		return ErrAuth
	case KindStorage:
		return ErrStorage
	case KindPrecondition:
		return ErrPrecondition
	}
	return nil
}

// Error is a domain failure reported by the service layer. Message is
// user-facing and returned verbatim by Error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// BusinessRuleError reports caller data violating a domain invariant.
func BusinessRuleError(msg string) error {
	return &Error{Kind: KindBusinessRule, Message: msg}
}

// AuthError reports a failed credential check.
func AuthError(msg string) error {
	return &Error{Kind: KindAuth, Message: msg}
}

// PreconditionError reports an operation invoked on an entity in the wrong state.
func PreconditionError(msg string) error {
	return &Error{Kind: KindPrecondition, Message: msg}
}

// StorageError wraps a gateway failure. Already kinded errors pass through.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStorage, Message: err.Error(), Err: err}
}

// KindOf returns the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
