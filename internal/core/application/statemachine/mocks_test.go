package statemachine_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ordering/internal/core/application/statemachine"
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Find(ctx context.Context, phrase string) ([]catalog.Product, error) {
	args := m.Called(ctx, phrase)
	products, _ := args.Get(0).([]catalog.Product)
	return products, args.Error(1)
}

type MockHistory struct{ mock.Mock }

func (m *MockHistory) MostFrequent(ctx context.Context, customerID int64, windowDays int) (*customer.FrequentItem, error) {
	args := m.Called(ctx, customerID, windowDays)
	item, _ := args.Get(0).(*customer.FrequentItem)
	return item, args.Error(1)
}

func (m *MockHistory) UsualItems(ctx context.Context, customerID int64) ([]order.LineItem, error) {
	args := m.Called(ctx, customerID)
	items, _ := args.Get(0).([]order.LineItem)
	return items, args.Error(1)
}

type MockFinalizer struct{ mock.Mock }

func (m *MockFinalizer) Finalize(ctx context.Context, state order.State) (order.State, kernel.UUID, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(order.State), args.Get(1).(kernel.UUID), args.Error(2)
}

type fixture struct {
	catalog   *MockCatalog
	history   *MockHistory
	finalizer *MockFinalizer
	machine   *statemachine.OrderStateMachine
}

func newFixture() *fixture {
	f := &fixture{
		catalog:   new(MockCatalog),
		history:   new(MockHistory),
		finalizer: new(MockFinalizer),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.machine = statemachine.NewOrderStateMachine(f.catalog, f.history, f.finalizer, logger, nil)
	return f
}

var acme = customer.Profile{
	ID:                     7,
	Name:                   "Acme Corp",
	DefaultShippingAddress: "12 Harbour Road, Mumbai",
	DefaultPONumber:        "PO-7781",
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func product(t *testing.T, id, name string, stock int, unit string) catalog.Product {
	t.Helper()
	return catalog.Product{ID: id, Name: name, Stock: stock, Price: money(t, unit)}
}

func item(t *testing.T, p catalog.Product, qty int) order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(p.ID, p.Name, qty, p.Price)
	require.NoError(t, err)
	return li
}

func stateWith(t *testing.T, items ...order.LineItem) order.State {
	t.Helper()
	s, err := order.NewState(acme.ID).WithShippingAddress(acme.DefaultShippingAddress).WithLineItems(items)
	require.NoError(t, err)
	return s
}
