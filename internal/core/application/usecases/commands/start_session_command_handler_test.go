package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/pkg/errs"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartSessionCommandHandler_Handle_SeedsDefaults(t *testing.T) {
	faker := gofakeit.New(7)
	profile := customer.Profile{
		ID:                     faker.Int64()&0xffff + 1,
		Name:                   faker.Company(),
		DefaultShippingAddress: faker.Address().Address,
		DefaultPONumber:        faker.Regex(`PO-[0-9]{5}`),
	}

	customers := new(MockCustomerRepository)
	sessions := new(MockSessionStore)
	customers.On("Get", mock.Anything, profile.ID).Return(profile, nil).Once()
	sessions.On("Save", mock.Anything, profile.ID, mock.MatchedBy(func(s session.Session) bool {
		address, _ := s.Order.ShippingAddress()
		po, _ := s.Order.PurchaseOrderNumber()
		return s.History.Len() == 0 &&
			s.Order.IsEmpty() &&
			s.Order.Status() == order.Draft &&
			s.Order.CustomerID() == profile.ID &&
			address == profile.DefaultShippingAddress &&
			po == profile.DefaultPONumber
	})).Return(nil).Once()

	cmd, err := commands.NewStartSessionCommand(profile.ID)
	require.NoError(t, err)

	h := commands.NewStartSessionCommandHandler(customers, sessions, 20, nil, discardLogger())
	got, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, profile, got)
	sessions.AssertExpectations(t)
}

func TestStartSessionCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	customers := new(MockCustomerRepository)
	sessions := new(MockSessionStore)
	customers.On("Get", mock.Anything, int64(99)).
		Return(customer.Profile{}, errs.NewObjectNotFoundError("customerId", 99)).Once()

	cmd, err := commands.NewStartSessionCommand(99)
	require.NoError(t, err)

	h := commands.NewStartSessionCommandHandler(customers, sessions, 20, nil, discardLogger())
	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartSessionCommandHandler_Handle_WaitsForTurnOfSameUser(t *testing.T) {
	customers := new(MockCustomerRepository)
	sessions := new(MockSessionStore)
	customers.On("Get", mock.Anything, acme.ID).Return(acme, nil).Once()
	sessions.On("Save", mock.Anything, acme.ID, mock.Anything).Return(nil).Once()

	locks := commands.NewUserLocks()
	h := commands.NewStartSessionCommandHandler(customers, sessions, 20, locks, discardLogger())

	cmd, err := commands.NewStartSessionCommand(acme.ID)
	require.NoError(t, err)

	unlock := locks.Lock(acme.ID)
	done := make(chan error, 1)
	go func() {
		_, err := h.Handle(t.Context(), cmd)
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("session reset ran while a turn of the same user held the lock")
	case <-time.After(50 * time.Millisecond):
	}
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)

	unlock()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session reset did not resume after unlock")
	}
	sessions.AssertExpectations(t)
}
