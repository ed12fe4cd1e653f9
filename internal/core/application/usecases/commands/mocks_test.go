package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ordering/internal/core/application/statemachine"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, placed *order.PlacedOrder) error {
	args := m.Called(ctx, placed)
	return args.Error(0)
}

func (m *MockOrderRepository) AddLine(ctx context.Context, orderID kernel.UUID, line order.LineItem) error {
	args := m.Called(ctx, orderID, line)
	return args.Error(0)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) LockStock(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Load(ctx context.Context, userID int64) (session.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, userID int64, s session.Session) error {
	args := m.Called(ctx, userID, s)
	return args.Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, customerID int64) (customer.Profile, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(customer.Profile), args.Error(1)
}

type MockClassifier struct{ mock.Mock }

func (m *MockClassifier) Classify(ctx context.Context, req ports.ClassifyRequest) (intent.Intent, error) {
	args := m.Called(ctx, req)
	in, _ := args.Get(0).(intent.Intent)
	return in, args.Error(1)
}

type MockStateMachine struct{ mock.Mock }

func (m *MockStateMachine) Apply(
	ctx context.Context,
	in intent.Intent,
	state order.State,
	profile customer.Profile,
) statemachine.Result {
	args := m.Called(ctx, in, state, profile)
	return args.Get(0).(statemachine.Result)
}

var acme = customer.Profile{
	ID:                     42,
	Name:                   "Acme Corp",
	DefaultShippingAddress: "12 Harbour Road, Mumbai",
	DefaultPONumber:        "PO-7781",
}

func lineItem(t *testing.T, productID, name string, qty int, unit string) order.LineItem {
	t.Helper()
	price, err := kernel.MoneyFromString(unit)
	require.NoError(t, err)
	item, err := order.NewLineItem(productID, name, qty, price)
	require.NoError(t, err)
	return item
}

func finalizableState(t *testing.T, items ...order.LineItem) order.State {
	t.Helper()
	s, err := order.NewState(acme.ID).
		WithShippingAddress(acme.DefaultShippingAddress).
		WithPurchaseOrderNumber(acme.DefaultPONumber).
		WithLineItems(items)
	require.NoError(t, err)
	return s
}
