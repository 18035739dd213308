// Package notifications tells the other participant of an order about a
// lifecycle change. Delivery is best effort: one attempt, failures are logged
// and never reach the user who made the change.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"
	"github.com/smaikl/GLG-bot/internal/core/ports"
)

// Dispatcher renders a transition into a message for the counterparty.
type Dispatcher struct {
	sender   ports.MessageSender
	resolver services.CounterpartyResolver
	logger   *slog.Logger
}

func NewDispatcher(sender ports.MessageSender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		resolver: services.NewCounterpartyResolver(),
		logger:   logger.With("component", "notification_dispatcher"),
	}
}

// Notify sends at most one message. A transition without a counterparty, such
// as cancelling an order nobody accepted, sends nothing.
func (d *Dispatcher) Notify(ctx context.Context, t services.Transition, actor *user.User) {
	recipient, err := d.resolver.Resolve(t)
	if errors.Is(err, services.ErrNoCounterparty) {
		d.logger.DebugContext(ctx, "Nobody to notify", "kind", t.Kind.String(), "order_id", t.Order.ID())
		return
	}
	if err != nil {
		d.logger.ErrorContext(ctx, "Cannot resolve notification recipient",
			"kind", t.Kind.String(), "error", err)
		return
	}

	text, err := render(t, actor)
	if err != nil {
		d.logger.ErrorContext(ctx, "Cannot render notification",
			"kind", t.Kind.String(), "order_id", t.Order.ID(), "error", err)
		return
	}

	if err = d.sender.Send(ctx, recipient, text); err != nil {
		d.logger.ErrorContext(ctx, "Failed to notify counterparty",
			"kind", t.Kind.String(),
			"order_id", t.Order.ID(),
			"recipient", recipient,
			"error", err,
		)
		return
	}

	d.logger.InfoContext(ctx, "Counterparty notified",
		"kind", t.Kind.String(), "order_id", t.Order.ID(), "recipient", recipient)
}

func render(t services.Transition, actor *user.User) (string, error) {
	id := t.Order.ID()

	switch t.Kind {
	case services.TransitionAccepted:
		if actor == nil {
			return "", errors.New("accept notice needs the carrier profile")
		}
		email := "not provided"
		if actor.Email() != nil {
			email = actor.Email().String()
		}
		return fmt.Sprintf("🎉 Your order #%d has been accepted by a carrier!\n\n"+
			"Carrier details:\n"+
			"Name: %s\n"+
			"Phone: %s\n"+
			"Email: %s\n\n"+
			"You can contact them to agree on the details.",
			id, actor.FullName(), actor.Phone().String(), email), nil
	case services.TransitionDelivered:
		return fmt.Sprintf("🚚 The carrier marked order #%d as delivered.\n"+
			"Please confirm that you received the cargo.", id), nil
	case services.TransitionCompleted:
		return fmt.Sprintf("🎉 The sender confirmed receipt of order #%d.\n"+
			"The order is completed!", id), nil
	case services.TransitionStageReported:
		return fmt.Sprintf("📍 Order #%d: %s.", id, stageNotice(t.Order.Stage())), nil
	default:
		return "", fmt.Errorf("no template for %s", t.Kind)
	}
}

func stageNotice(s order.Stage) string {
	switch s {
	case order.StageLoading:
		return "the cargo is being loaded"
	case order.StageOnRoute:
		return "the cargo is on the way"
	case order.StageAwaitingUnload:
		return "the cargo has arrived and is waiting to be unloaded"
	case order.StageUnloaded:
		return "the cargo has been unloaded"
	default:
		return "delivery status updated"
	}
}
