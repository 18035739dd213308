package services

import (
	"errors"
	"fmt"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
)

// ErrNoCounterparty is returned when a transition has nobody to notify.
var ErrNoCounterparty = errors.New("transition has no counterparty")

// TransitionKind names a successful change of an order.
type TransitionKind int

const (
	TransitionAccepted TransitionKind = iota + 1
	TransitionDelivered
	TransitionCompleted
	TransitionCancelled
	TransitionStageReported
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionAccepted:
		return "accepted"
	case TransitionDelivered:
		return "delivered"
	case TransitionCompleted:
		return "completed"
	case TransitionCancelled:
		return "cancelled"
	case TransitionStageReported:
		return "stage_reported"
	default:
		return "unknown"
	}
}

// Transition is an order change made by ActorID. Order holds the state after the change.
type Transition struct {
	Kind    TransitionKind
	Order   *order.Order
	ActorID int64
}

// CounterpartyResolver picks the recipient of a transition notice.
type CounterpartyResolver struct{}

func NewCounterpartyResolver() CounterpartyResolver {
	return CounterpartyResolver{}
}

// Resolve returns the id of the participant who did not perform the transition.
func (CounterpartyResolver) Resolve(t Transition) (int64, error) {
	if err := t.Order.Validate(); err != nil {
		return 0, err
	}
	if !t.Order.IsParticipant(t.ActorID) {
		return 0, fmt.Errorf("user %d is not a participant of order %d", t.ActorID, t.Order.ID())
	}

	recipient, ok := t.Order.Counterparty(t.ActorID)
	if !ok {
		return 0, ErrNoCounterparty
	}

	switch t.Kind {
	case TransitionAccepted, TransitionDelivered, TransitionStageReported:
		if recipient != t.Order.SenderID() {
			return 0, fmt.Errorf("%s is reported to the sender, resolved %d", t.Kind, recipient)
		}
	case TransitionCompleted:
		if !t.Order.IsCarrier(recipient) {
			return 0, fmt.Errorf("%s is reported to the carrier, resolved %d", t.Kind, recipient)
		}
	case TransitionCancelled:
	default:
		return 0, fmt.Errorf("unknown transition kind %d", t.Kind)
	}

	return recipient, nil
}
