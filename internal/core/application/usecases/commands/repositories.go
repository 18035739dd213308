// Package commands contains the operations that change system state: registering
// users, publishing orders, attaching documents and moving orders through their
// lifecycle. Every handler validates its command, opens a unit of work, performs
// the change and commits. Lifecycle handlers notify the counterparty only after
// the commit succeeded.
package commands

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides the user repository bound to the transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DocumentRepoFactory provides the document repository bound to the transaction.
	DocumentRepoFactory interface {
		DocumentRepository() ports.DocumentRepository
	}

	// UserUoW is used by registration and profile edits.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// OrderUoW is used by order creation and lifecycle transitions, which need
	// the acting user's role next to the order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   actor, err := uow.UserRepository().Get(ctx, actorID)
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... apply the transition
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DocumentUoW checks the owning order and records the attachment atomically.
	DocumentUoW interface {
		TxManager
		OrderRepoFactory
		DocumentRepoFactory
	}

	DocumentUoWFactory interface {
		Create() DocumentUoW
	}
)
