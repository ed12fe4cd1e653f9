package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/guard"
)

var ErrExpireSessionsCommandIsNotConstructed = errors.New(
	"ExpireSessionsCommand must be created via NewExpireSessionsCommand constructor",
)

var ErrSessionTTLMustBePositive = errors.New("session ttl must be positive")

// ExpireSessionsCommand removes sessions not saved within ttl of now.
type ExpireSessionsCommand struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewExpireSessionsCommand(now time.Time, ttl time.Duration) (ExpireSessionsCommand, error) {
	if ttl <= 0 {
		return ExpireSessionsCommand{}, ErrSessionTTLMustBePositive
	}

	return ExpireSessionsCommand{
		cutoff: now.Add(-ttl),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireSessionsCommandIsNotConstructed)
}

func (c ExpireSessionsCommand) Cutoff() time.Time {
	return c.cutoff
}
