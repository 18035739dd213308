package commands

import (
	"context"
	"errors"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// TransitionNotifier is told about every committed lifecycle change.
// Implementations must not fail the caller; delivery problems are theirs to log.
type TransitionNotifier interface {
	Notify(ctx context.Context, t services.Transition, actor *user.User)
}

type orderTransition struct {
	kind    services.TransitionKind
	orderID int64
	actorID int64
	apply   func(o *order.Order, actor *user.User) error
}

// runOrderTransition loads the actor and the order, applies the transition and
// writes it conditionally on the status it was read with. A concurrent writer
// that got there first turns the write into errs.ConflictError.
func runOrderTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	notifier TransitionNotifier,
	tr orderTransition,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, tr.actorID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewForbiddenErrorWithCause(tr.kind.String(), err)
		}
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, tr.orderID)
	if err != nil {
		return nil, err
	}

	expected := o.Status()
	if err = tr.apply(o, actor); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateIfStatus(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifier.Notify(ctx, services.Transition{
		Kind:    tr.kind,
		Order:   o,
		ActorID: actor.ID(),
	}, actor)

	return o, nil
}

func validateOrderTarget(orderID, actorID int64) error {
	var orderErr, actorErr error
	if orderID <= 0 {
		orderErr = errs.NewValueIsRequiredError("order id")
	}
	if actorID <= 0 {
		actorErr = errs.NewValueIsRequiredError("actor id")
	}
	return errors.Join(orderErr, actorErr)
}
