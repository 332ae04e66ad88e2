package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockConflict     = errors.New("stock conflict")
)

// sanitize keeps user supplied values on a single line.
func sanitize(v any) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(fmt.Sprintf("%v", v))
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a missing object, e.g. "object not found: order #7".
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %s #%s", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
	return withCause(msg, e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError is returned when the requested action would move an
// order into the status it already has.
type InvalidTransitionError struct {
	Action string
	Status string
}

func NewInvalidTransitionError(action, status string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, Status: status}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s, order is already %s", ErrInvalidTransition, e.Action, e.Status)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InsufficientStockError names the book that blocked a completion and its shortfall.
type InsufficientStockError struct {
	BookID    any
	Required  int
	Available int
}

func NewInsufficientStockError(bookID any, required, available int) *InsufficientStockError {
	return &InsufficientStockError{BookID: bookID, Required: required, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: book #%s requires %d, available %d",
		ErrInsufficientStock, sanitize(e.BookID), e.Required, e.Available)
}

// Shortfall is the number of copies missing to satisfy the request.
func (e *InsufficientStockError) Shortfall() int {
	return e.Required - e.Available
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// StockConflictError is raised by the inventory store when an adjustment would
// leave stock negative. Callers check stock first, so this is a safety net.
type StockConflictError struct {
	BookID any
	Delta  int
	Cause  error
}

func NewStockConflictError(bookID any, delta int) *StockConflictError {
	return &StockConflictError{BookID: bookID, Delta: delta}
}

func NewStockConflictErrorWithCause(bookID any, delta int, cause error) *StockConflictError {
	return &StockConflictError{BookID: bookID, Delta: delta, Cause: cause}
}

func (e *StockConflictError) Error() string {
	msg := fmt.Sprintf("%s: book #%s cannot be adjusted by %d", ErrStockConflict, sanitize(e.BookID), e.Delta)
	return withCause(msg, e.Cause)
}

func (e *StockConflictError) Unwrap() error {
	return ErrStockConflict
}
