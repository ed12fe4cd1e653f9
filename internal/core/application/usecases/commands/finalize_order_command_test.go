package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinalizeOrderCommand(t *testing.T) {
	state := order.NewState(acme.ID)

	cmd, err := commands.NewFinalizeOrderCommand(state)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, acme.ID, cmd.State().CustomerID())
}

func TestNewFinalizeOrderCommand_MissingCustomer(t *testing.T) {
	_, err := commands.NewFinalizeOrderCommand(order.State{})

	require.ErrorIs(t, err, commands.ErrCustomerIDIsRequired)
}

func TestFinalizeOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.FinalizeOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrFinalizeOrderCommandIsNotConstructed)
}
