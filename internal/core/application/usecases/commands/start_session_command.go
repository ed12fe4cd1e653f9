package commands

import (
	"errors"

	"ordering/internal/pkg/guard"
)

var ErrStartSessionCommandIsNotConstructed = errors.New(
	"StartSessionCommand must be created via NewStartSessionCommand constructor",
)

// StartSessionCommand replaces whatever session the user had with a fresh draft.
type StartSessionCommand struct { //nolint:recvcheck //using for validation
	userID int64

	guard guard.ConstructorGuard
}

func NewStartSessionCommand(userID int64) (StartSessionCommand, error) {
	if userID <= 0 {
		return StartSessionCommand{}, ErrUserIDIsRequired
	}

	return StartSessionCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c StartSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartSessionCommandIsNotConstructed)
}

func (c StartSessionCommand) UserID() int64 {
	return c.userID
}
