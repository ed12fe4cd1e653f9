// Package commands contains the operations that change order and session state.
// Every command is built through its constructor and checked with Validate
// before its handler touches any collaborator.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces scope the repositories a handler may use to one transaction.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// FulfillmentUoW is the transaction an order is placed in: the order rows
	// are written and stock is locked and decremented through the same UoW.
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//   ... uow.OrderRepository(), uow.StockRepository()
	//   err = uow.Commit(ctx)
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
	}

	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}
)
