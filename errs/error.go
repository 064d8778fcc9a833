package errs

import (
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	StoreFailure Kind = iota
	ThreadNotFound
	ParentConflict
	AllocationFailure
	UserNotFound
	InvalidFormat
)

var kindNames = map[Kind]string{
	StoreFailure:      "store_failure",
	ThreadNotFound:    "thread_not_found",
	ParentConflict:    "parent_conflict",
	AllocationFailure: "allocation_failure",
	UserNotFound:      "user_not_found",
	InvalidFormat:     "invalid_format",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

//easyjson:json
type Error struct {
	Kind       Kind   `json:"-"`
	HttpStatus int    `json:"-"`
	Message    string `json:"message"`

	cause error
}

func NewError(kind Kind, status int, message string) *Error {
	return &Error{
		Kind:       kind,
		HttpStatus: status,
		Message:    message,
	}
}

func NewThreadNotFoundError(message string) *Error {
	return NewError(ThreadNotFound, http.StatusNotFound, message)
}

func NewParentConflictError(message string) *Error {
	return NewError(ParentConflict, http.StatusConflict, message)
}

func NewUserNotFoundError(message string) *Error {
	return NewError(UserNotFound, http.StatusNotFound, message)
}

func NewInvalidFormatError(message string) *Error {
	return NewError(InvalidFormat, http.StatusUnprocessableEntity, message)
}

func NewAllocationError(cause error) *Error {
	err := NewError(AllocationFailure, http.StatusInternalServerError, "post id allocation failed")
	err.cause = errors.WithStack(cause)
	return err
}

func NewStoreError(cause error, message string) *Error {
	err := NewError(StoreFailure, http.StatusInternalServerError, message)
	err.cause = errors.WithStack(cause)
	return err
}

// Wrap passes *Error values through and turns anything else into a
// StoreFailure carrying err as its cause.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return NewStoreError(err, message)
}

func (err *Error) Error() string {
	if err.cause != nil {
		return err.Message + ": " + err.cause.Error()
	}
	return err.Message
}

func (err *Error) Cause() error {
	return err.cause
}

func (err *Error) Unwrap() error {
	return err.cause
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return StoreFailure
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HttpStatusOf maps any error to the status it is reported with.
func HttpStatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HttpStatus
	}
	return http.StatusInternalServerError
}
