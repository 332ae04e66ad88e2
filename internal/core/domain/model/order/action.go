package order

import (
	"fmt"

	"bookstore/internal/pkg/errs"
)

// Action is a transition requested by an administrator.
type Action string

const (
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// ParseAction accepts exactly "complete" or "cancel".
func ParseAction(raw string) (Action, error) {
	action := Action(raw)
	if err := action.Validate(); err != nil {
		return "", err
	}
	return action, nil
}

func (a Action) Validate() error {
	switch a {
	case ActionComplete, ActionCancel:
		return nil
	case "":
		return errs.NewValueIsRequiredError("action")
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not one of complete, cancel", string(a)))
	}
}

// Target returns the status the action leads to.
func (a Action) Target() Status {
	switch a {
	case ActionComplete:
		return Completed
	case ActionCancel:
		return Cancelled
	default:
		return Unknown
	}
}
