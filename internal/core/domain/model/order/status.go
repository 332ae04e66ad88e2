package order

import (
	"fmt"

	"bookstore/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──complete──> Completed ──cancel──> Cancelled
//	   │                                            ▲
//	   └──────────────────cancel────────────────────┘
//
// Cancelled orders may still be completed again, which debits stock once more.
// The only forbidden moves are the ones into the current status.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota

	// Pending covers every non-terminal value already in storage.
	// Stock has not been debited for a pending order.
	Pending

	// Completed means stock was debited for every line of the order.
	Completed

	// Cancelled means the order was withdrawn; any earlier debit has been credited back.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// ParseStatus maps a stored status to a Status. Values other than
// "completed" and "cancelled" are treated as pending.
func ParseStatus(raw string) Status {
	switch raw {
	case "completed":
		return Completed
	case "cancelled":
		return Cancelled
	default:
		return Pending
	}
}

func (s Status) Validate() error {
	if s != Pending && s != Completed && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsDebited reports whether stock is currently debited for an order in this status.
func (s Status) IsDebited() bool {
	return s == Completed
}

// Complete transitions the status to Completed.
// Completing an already completed order is rejected.
func (s Status) Complete() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Completed {
		return 0, errs.NewInvalidTransitionError(string(ActionComplete), s.String())
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled.
// Cancelling an already cancelled order is rejected.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Cancelled {
		return 0, errs.NewInvalidTransitionError(string(ActionCancel), s.String())
	}
	return Cancelled, nil
}
