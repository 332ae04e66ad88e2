package kernel

import (
	"fmt"
	"strconv"

	"bookstore/internal/pkg/errs"
)

// ID identifies orders, books and customers. Valid identifiers are strictly positive.
type ID int64

// NewID validates a raw identifier.
//
// Example:
//
//	orderID, err := kernel.NewID(7)
//	if err != nil {
//	    return err // value is invalid: id (cause: 0 is not greater than 0)
//	}
func NewID(value int64) (ID, error) {
	id := ID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal identifier, e.g. from a path parameter.
func ParseID(s string) (ID, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(value)
}

func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
