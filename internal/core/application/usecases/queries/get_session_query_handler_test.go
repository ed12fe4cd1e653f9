package queries_test

import (
	"context"
	"testing"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Load(ctx context.Context, userID int64) (session.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, userID int64, s session.Session) error {
	return m.Called(ctx, userID, s).Error(0)
}

func TestGetSessionQueryHandler_Handle(t *testing.T) {
	store := new(MockSessionStore)
	stored := session.Session{
		Order:   order.NewState(5).WithShippingAddress("1 Dock Street"),
		History: session.NewHistory(10, session.Entry{Role: session.RoleUser, Text: "hi"}),
	}
	store.On("Load", mock.Anything, int64(5)).Return(stored, nil).Once()

	query, err := queries.NewGetSessionQuery(5)
	require.NoError(t, err)

	res, err := queries.NewGetSessionQueryHandler(store).Handle(t.Context(), query)

	require.NoError(t, err)
	require.NotNil(t, res.OrderState.ShippingAddress)
	assert.Equal(t, "1 Dock Street", *res.OrderState.ShippingAddress)
	assert.Equal(t, []session.Entry{{Role: session.RoleUser, Text: "hi"}}, res.History)
}

func TestGetSessionQueryHandler_Handle_NotFound(t *testing.T) {
	store := new(MockSessionStore)
	store.On("Load", mock.Anything, int64(5)).Return(session.Session{}, ports.ErrSessionNotFound).Once()

	query, err := queries.NewGetSessionQuery(5)
	require.NoError(t, err)

	_, err = queries.NewGetSessionQueryHandler(store).Handle(t.Context(), query)

	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestGetSessionQuery_Invalid(t *testing.T) {
	_, err := queries.NewGetSessionQuery(0)
	require.ErrorIs(t, err, queries.ErrUserIDIsRequired)

	var zero queries.GetSessionQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetSessionQueryIsNotConstructed)
}
