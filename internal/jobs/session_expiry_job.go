package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSessionExpirySchedule runs every 15 minutes.
const DefaultSessionExpirySchedule = "0 */15 * * * *"

type SessionExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireSessionsCommand) (int64, error)
}

type SessionExpiryJob struct {
	handler  SessionExpirer
	schedule string
	ttl      time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSessionExpiryJob(handler SessionExpirer, schedule string, ttl time.Duration, logger *slog.Logger) *SessionExpiryJob {
	if schedule == "" {
		schedule = DefaultSessionExpirySchedule
	}
	return &SessionExpiryJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_expiry_job"),
	}
}

func (j *SessionExpiryJob) Name() string {
	return "session expiry"
}

// Run performs one sweep.
func (j *SessionExpiryJob) Run(ctx context.Context) {
	cmd, err := commands.NewExpireSessionsCommand(j.now(), j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session expiry job misconfigured", "error", err)
		return
	}

	if _, err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Session expiry job failed", "error", err)
	}
}

func (j *SessionExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session expiry job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *SessionExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session expiry job stopped")
}
