package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"
)

// StartSessionCommandHandler resets a user's session on login: a draft order
// seeded with the profile's default address and PO number, and no history.
type StartSessionCommandHandler struct {
	customers    ports.CustomerRepository
	sessions     ports.SessionStore
	historyLimit int
	locks        *UserLocks
	logger       *slog.Logger
}

// NewStartSessionCommandHandler takes the UserLocks of the turn handler so a
// reset never interleaves with a turn of the same user.
//
//	locks := commands.NewUserLocks()
//	turns := commands.NewHandleTurnCommandHandler(sessions, customers, classifier, machine, 4, locks, logger, nil)
//	start := commands.NewStartSessionCommandHandler(customers, sessions, 20, locks, logger)
func NewStartSessionCommandHandler(
	customers ports.CustomerRepository,
	sessions ports.SessionStore,
	historyLimit int,
	locks *UserLocks,
	logger *slog.Logger,
) StartSessionCommandHandler {
	if locks == nil {
		locks = NewUserLocks()
	}

	return StartSessionCommandHandler{
		customers:    customers,
		sessions:     sessions,
		historyLimit: historyLimit,
		locks:        locks,
		logger:       logger.With("component", "start_session"),
	}
}

// Handle returns the profile the session was seeded from.
func (h *StartSessionCommandHandler) Handle(ctx context.Context, cmd StartSessionCommand) (customer.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return customer.Profile{}, err
	}

	profile, err := h.customers.Get(ctx, cmd.UserID())
	if err != nil {
		return customer.Profile{}, err
	}

	unlock := h.locks.Lock(profile.ID)
	defer unlock()

	state := order.NewState(profile.ID).
		WithShippingAddress(profile.DefaultShippingAddress).
		WithPurchaseOrderNumber(profile.DefaultPONumber)

	if err = h.sessions.Save(ctx, profile.ID, session.New(state, h.historyLimit)); err != nil {
		return customer.Profile{}, fmt.Errorf("save session of user %d: %w", profile.ID, err)
	}

	h.logger.InfoContext(ctx, "session started", "user_id", profile.ID)

	return profile, nil
}
