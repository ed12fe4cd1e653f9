package commands

import (
	"errors"
	"strings"

	"ordering/internal/pkg/guard"
)

var ErrHandleTurnCommandIsNotConstructed = errors.New(
	"HandleTurnCommand must be created via NewHandleTurnCommand constructor",
)

// HandleTurnCommand is one user utterance addressed to the user's session.
type HandleTurnCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	message string

	guard guard.ConstructorGuard
}

func NewHandleTurnCommand(userID int64, message string) (HandleTurnCommand, error) {
	cmd := HandleTurnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setMessage(message),
	); err != nil {
		return HandleTurnCommand{}, err
	}

	return cmd, nil
}

func (c HandleTurnCommand) Validate() error {
	return c.guard.Validate(ErrHandleTurnCommandIsNotConstructed)
}

func (c HandleTurnCommand) UserID() int64 {
	return c.userID
}

func (c HandleTurnCommand) Message() string {
	return c.message
}

func (c *HandleTurnCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return ErrUserIDIsRequired
	}

	c.userID = userID
	return nil
}

func (c *HandleTurnCommand) setMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrMessageIsRequired
	}

	c.message = message
	return nil
}
