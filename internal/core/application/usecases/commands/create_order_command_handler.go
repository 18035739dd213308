package commands

import (
	"context"
	"errors"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// CreateOrderCommandHandler publishes a new order on behalf of a registered sender.
// The order starts in status new without a carrier.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id assigned by storage.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sender, err := uow.UserRepository().Get(ctx, cmd.SenderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return 0, errs.NewForbiddenErrorWithCause("create order", err)
		}
		return 0, err
	}
	if !sender.IsSender() {
		return 0, errs.NewForbiddenErrorWithCause("create order", errors.New("only senders can create orders"))
	}

	o, err := order.NewOrder(sender.ID(), cmd.Cargo(), time.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}
