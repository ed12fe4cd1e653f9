package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func price(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func lineItem(t *testing.T, productID, name string, qty int, unit string) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(productID, name, qty, price(t, unit))
	require.NoError(t, err)
	return item
}
