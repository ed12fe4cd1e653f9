package queries

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetSessionQueryIsNotConstructed = errors.New(
		"GetSessionQuery must be created via NewGetSessionQuery constructor",
	)
	ErrUserIDIsRequired = errors.New("user id is required")
)

// GetSessionQuery reads the stored order and conversation of one user.
type GetSessionQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewGetSessionQuery(userID int64) (GetSessionQuery, error) {
	if userID <= 0 {
		return GetSessionQuery{}, ErrUserIDIsRequired
	}
	return GetSessionQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

func (q GetSessionQuery) UserID() int64 {
	return q.userID
}

type GetSessionQueryResponse struct {
	OrderState order.Snapshot
	History    []session.Entry
}
