package order

import (
	"errors"
	"fmt"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// Status is the primary lifecycle state of an order.
//
//	New ──> Accepted ──> Delivered ──> Completed
//	 │
//	 └──> Cancelled
//
// Only the transitions drawn above exist. Every other attempt fails with a
// conflict error and leaves the status untouched.
type Status int

const (
	// Unknown catches uninitialized values and anything read from storage
	// that is not one of the names below.
	Unknown Status = iota
	New
	Accepted
	Delivered
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	New:       "new",
	Accepted:  "accepted",
	Delivered: "delivered",
	Completed: "completed",
	Cancelled: "cancelled",
}

// ParseStatus maps the persisted name back to a Status. Names outside the
// closed set are rejected.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// HasCarrier reports whether an order in this status must carry a carrier id.
func (s Status) HasCarrier() bool {
	return s == Accepted || s == Delivered || s == Completed
}

// Accept transitions New to Accepted.
func (s Status) Accept() (Status, error) {
	return s.transition(New, Accepted, "accept")
}

// MarkDelivered transitions Accepted to Delivered.
func (s Status) MarkDelivered() (Status, error) {
	return s.transition(Accepted, Delivered, "mark delivered")
}

// ConfirmDelivery transitions Delivered to Completed.
func (s Status) ConfirmDelivery() (Status, error) {
	return s.transition(Delivered, Completed, "confirm delivery")
}

// Cancel transitions New to Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(New, Cancelled, "cancel")
}

// statusConflictParam names the ConflictError whose ID is the status the
// order actually had.
const statusConflictParam = "order status"

// NewStatusConflictError reports that an order was in current instead of the
// status a transition needed.
func NewStatusConflictError(current Status, cause error) *errs.ConflictError {
	return errs.NewConflictErrorWithCause(statusConflictParam, current.String(), cause)
}

// ConflictingStatus returns the status carried by a status conflict anywhere
// in err's chain.
func ConflictingStatus(err error) (Status, bool) {
	var conflict *errs.ConflictError
	if !errors.As(err, &conflict) || conflict.ParamName != statusConflictParam {
		return Unknown, false
	}
	name, ok := conflict.ID.(string)
	if !ok {
		return Unknown, false
	}
	status, err := ParseStatus(name)
	if err != nil {
		return Unknown, false
	}
	return status, true
}

func (s Status) transition(from, to Status, action string) (Status, error) {
	if s != from {
		return Unknown, NewStatusConflictError(s,
			fmt.Errorf("cannot %s an order that is %s, it must be %s", action, s, from))
	}
	return to, nil
}
