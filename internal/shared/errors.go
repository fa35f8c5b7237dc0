package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on create or rename.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInUse indicates a record is still referenced and cannot be removed.
	ErrInUse = errors.New("in use")
	// ErrTransient is the injected, input independent failure.
	ErrTransient = errors.New("operation failed")
	// ErrInvalid indicates a malformed token such as an unknown status or action.
	ErrInvalid = errors.New("invalid value")
)

// Error pairs a human readable message with one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

// NewError builds an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// UserSafeMessage returns a message fit for display next to a failed action.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	switch {
	case errors.Is(err, ErrTransient):
		return "Operation failed. Please try again."
	default:
		return "Something went wrong."
	}
}
