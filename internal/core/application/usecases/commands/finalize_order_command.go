package commands

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// FinalizeOrderCommand carries the order state to be placed. The state is a
// value, so the caller's copy is never touched by the handler.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	state order.State

	guard guard.ConstructorGuard
}

func NewFinalizeOrderCommand(state order.State) (FinalizeOrderCommand, error) {
	if state.CustomerID() == 0 {
		return FinalizeOrderCommand{}, ErrCustomerIDIsRequired
	}

	return FinalizeOrderCommand{
		state: state,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) State() order.State {
	return c.state
}
