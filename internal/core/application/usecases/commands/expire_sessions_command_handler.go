package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/ports"
)

type ExpireSessionsCommandHandler struct {
	sweeper ports.SessionSweeper
	logger  *slog.Logger
}

func NewExpireSessionsCommandHandler(sweeper ports.SessionSweeper, logger *slog.Logger) ExpireSessionsCommandHandler {
	return ExpireSessionsCommandHandler{
		sweeper: sweeper,
		logger:  logger.With("component", "expire_sessions"),
	}
}

// Handle returns the number of sessions removed.
func (h ExpireSessionsCommandHandler) Handle(ctx context.Context, cmd ExpireSessionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	deleted, err := h.sweeper.DeleteIdleSince(ctx, cmd.Cutoff())
	if err != nil {
		return 0, fmt.Errorf("delete sessions idle since %s: %w", cmd.Cutoff().Format(time.RFC3339), err)
	}

	if deleted > 0 {
		h.logger.InfoContext(ctx, "expired idle sessions", "count", deleted, "cutoff", cmd.Cutoff())
	}
	return deleted, nil
}
