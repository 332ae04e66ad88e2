package commands

import (
	"errors"

	"bookstore/internal/pkg/errs"
)

// ErrorKind is the caller-facing category of a failed command.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindBadRequest        ErrorKind = "BadRequest"
	KindNotFound          ErrorKind = "NotFound"
	KindInvalidTransition ErrorKind = "InvalidTransition"
	KindInsufficientStock ErrorKind = "InsufficientStock"
	KindStorageFailure    ErrorKind = "StorageFailure"
)

// Classify maps an error returned by a command or query handler to its kind.
// Errors outside the domain taxonomy, a stock conflict caught by storage included,
// are storage failures.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, errs.ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, errs.ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, errs.ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, errs.ErrStockConflict):
		return KindStorageFailure
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, ErrTransitionOrderCommandIsNotConstructed),
		errors.Is(err, ErrImportBooksCommandIsNotConstructed):
		return KindBadRequest
	default:
		return KindStorageFailure
	}
}
