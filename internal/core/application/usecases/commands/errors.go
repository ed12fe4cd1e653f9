package commands

import "errors"

var (
	ErrCustomerIDIsRequired = errors.New("customer id is required")
	ErrUserIDIsRequired     = errors.New("user id is required")
	ErrMessageIsRequired    = errors.New("message is required")

	// ErrOrderNotFinalizable is returned before any transaction is opened. It
	// wraps the order's own validation errors.
	ErrOrderNotFinalizable = errors.New("order is not finalizable")
)
