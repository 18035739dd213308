package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
)

func (e *Engine) createOrder(ctx context.Context, s *Session, in Input) (Reply, error) {
	d := &s.Order

	switch s.Step {
	case StepCargoType:
		ct, ok := parseCargoType(in)
		if !ok {
			return retry(s, "❌ Please choose the cargo type with the buttons below."), nil
		}
		d.CargoType = ct
		return advance(s, StepWeight), nil

	case StepWeight:
		if in.Kind != InputText {
			return retry(s, "❌ The weight is required."), nil
		}
		w, err := kernel.ParseWeight(in.Text)
		if err != nil {
			return retry(s, "❌ Enter the weight as a positive number, for example 1500 or 12.5."), nil
		}
		d.WeightKg = w.Kilograms()
		return advance(s, StepDimensions), nil

	case StepDimensions:
		switch in.Kind {
		case InputSkip:
			d.Dimensions = nil
		case InputText:
			d.Dimensions = optionalText(in.Text)
		default:
			return retry(s, "❌ Enter the dimensions or skip this step."), nil
		}
		return advance(s, StepPickupAddress), nil

	case StepPickupAddress:
		v, ok := requiredText(in)
		if !ok {
			return retry(s, "❌ The pickup address is required."), nil
		}
		d.PickupAddress = v
		return advance(s, StepDeliveryAddress), nil

	case StepDeliveryAddress:
		v, ok := requiredText(in)
		if !ok {
			return retry(s, "❌ The delivery address is required."), nil
		}
		d.DeliveryAddress = v
		return advance(s, StepPickupDate), nil

	case StepPickupDate:
		v, ok := requiredText(in)
		if !ok {
			return retry(s, "❌ The pickup date is required."), nil
		}
		d.PickupDate = v
		return advance(s, StepComment), nil

	case StepComment:
		switch in.Kind {
		case InputSkip:
			d.Comment = nil
		case InputText:
			d.Comment = optionalText(in.Text)
		default:
			return retry(s, "❌ Enter a comment or skip this step."), nil
		}
		return toConfirmation(s, StepConfirmOrder, d.firstMissing()), nil

	case StepConfirmOrder:
		switch in.Kind {
		case InputConfirm:
			if missing := d.firstMissing(); missing != "" {
				return toConfirmation(s, StepConfirmOrder, missing), nil
			}
			return e.commitOrder(ctx, s)
		case InputReject:
			return Reply{Text: "❌ Order creation cancelled.", Finished: true}, nil
		default:
			return retry(s, "Please confirm or reject the order."), nil
		}

	case StepDocuments:
		return e.attachDocuments(ctx, s, in)
	}

	return Reply{}, fmt.Errorf("order creation has no step %q", s.Step)
}

func (e *Engine) commitOrder(ctx context.Context, s *Session) (Reply, error) {
	d := s.Order

	weight, err := kernel.NewWeight(d.WeightKg)
	if err != nil {
		return Reply{}, err
	}
	cmd, err := commands.NewCreateOrderCommand(s.UserID, order.Cargo{
		Type:            d.CargoType,
		Weight:          weight,
		Dimensions:      d.Dimensions,
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		PickupDate:      d.PickupDate,
		Comment:         d.Comment,
	})
	if err != nil {
		return Reply{}, err
	}

	id, err := e.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return Reply{}, err
	}
	e.logger.InfoContext(ctx, "Order created", "order_id", id, "sender_id", s.UserID)

	s.Order = OrderDraft{}
	s.OrderID = id
	reply := advance(s, StepDocuments)
	reply.Text = fmt.Sprintf("✅ Order #%d created!\n\n", id) + reply.Text
	return reply, nil
}

func requiredText(in Input) (string, bool) {
	if in.Kind != InputText {
		return "", false
	}
	v := strings.TrimSpace(in.Text)
	return v, v != ""
}
