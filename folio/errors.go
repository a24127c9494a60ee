package folio

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines folio error kinds.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindDuplicateEmail     ErrorKind = "duplicate_email"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindNotFound           ErrorKind = "not_found"
	KindFileType           ErrorKind = "file_type_rejected"
	KindFileTooLarge       ErrorKind = "file_too_large"
	KindPDF                ErrorKind = "pdf_generation"
	KindInternal           ErrorKind = "internal"
)

// Error wraps errors with a kind.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new folio error.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var folioErr *Error
	if errors.As(err, &folioErr) {
		kind = folioErr.Kind
		if folioErr.Msg != "" {
			msg = folioErr.Msg
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = KindPDF
	}

	switch kind {
	case KindValidation, KindDuplicateEmail, KindFileType, KindFileTooLarge:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode(string(kind))
	case KindInvalidCredentials, KindUnauthorized:
		return errorslib.New(msg, errorslib.CategoryAuthz).WithTextCode(string(kind))
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode(string(kind))
	case KindPDF:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode(string(kind))
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode(string(KindInternal))
	}
}

// KindFromError maps an error to its folio error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var folioErr *Error
	if errors.As(err, &folioErr) {
		return folioErr.Kind
	}

	return KindInternal
}
