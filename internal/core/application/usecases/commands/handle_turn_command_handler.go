package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/application/statemachine"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultClassifierWindow is how many history entries the classifier sees.
const DefaultClassifierWindow = 4

// StateMachine applies one intent to an order.
type StateMachine interface {
	Apply(ctx context.Context, in intent.Intent, state order.State, profile customer.Profile) statemachine.Result
}

// HandleTurnResult is the reply and order state returned to the caller.
type HandleTurnResult struct {
	Reply  string
	State  order.State
	Intent intent.Kind
}

// HandleTurnCommandHandler runs one conversation turn: load the session,
// classify the utterance, apply it, record both sides in history and save.
// Turns for the same user are serialized in-process through UserLocks.
type HandleTurnCommandHandler struct {
	sessions         ports.SessionStore
	customers        ports.CustomerRepository
	classifier       ports.IntentClassifier
	machine          StateMachine
	classifierWindow int
	locks            *UserLocks
	logger           *slog.Logger
	metrics          *metrics.Collectors
}

// NewHandleTurnCommandHandler builds the turn handler. classifierWindow bounds
// the history sent to the classifier; locks may be shared with other writers of
// the session and a nil locks gets a private set.
//
// Example:
//
//	handler := NewHandleTurnCommandHandler(sessions, customers, classifier, machine, 4, locks, logger, collectors)
//	cmd, _ := NewHandleTurnCommand(userID, "add 5 blue pens")
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ports.ErrSessionNotFound):
//	    log.Println("user must log in first")
//	case err != nil:
//	    log.Printf("turn failed: %v", err)
//	default:
//	    fmt.Println(res.Reply)
//	}
func NewHandleTurnCommandHandler(
	sessions ports.SessionStore,
	customers ports.CustomerRepository,
	classifier ports.IntentClassifier,
	machine StateMachine,
	classifierWindow int,
	locks *UserLocks,
	logger *slog.Logger,
	collectors *metrics.Collectors,
) *HandleTurnCommandHandler {
	if classifierWindow <= 0 {
		classifierWindow = DefaultClassifierWindow
	}
	if locks == nil {
		locks = NewUserLocks()
	}

	return &HandleTurnCommandHandler{
		sessions:         sessions,
		customers:        customers,
		classifier:       classifier,
		machine:          machine,
		classifierWindow: classifierWindow,
		locks:            locks,
		logger:           logger.With("component", "handle_turn"),
		metrics:          collectors,
	}
}

// Handle returns ports.ErrSessionNotFound (wrapped) when the user has not
// started a session. Classifier failures never fail the turn.
func (h *HandleTurnCommandHandler) Handle(ctx context.Context, cmd HandleTurnCommand) (HandleTurnResult, error) {
	if err := cmd.Validate(); err != nil {
		return HandleTurnResult{}, err
	}

	ctx, span := tracer.Start(ctx, "HandleTurn")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", cmd.UserID()))

	unlock := h.locks.Lock(cmd.UserID())
	defer unlock()

	sess, err := h.sessions.Load(ctx, cmd.UserID())
	if err != nil {
		return HandleTurnResult{}, fmt.Errorf("load session of user %d: %w", cmd.UserID(), err)
	}

	profile, err := h.customers.Get(ctx, cmd.UserID())
	if err != nil {
		return HandleTurnResult{}, fmt.Errorf("load profile of user %d: %w", cmd.UserID(), err)
	}

	history := sess.History.Append(session.Entry{Role: session.RoleUser, Text: cmd.Message()})

	in := h.classify(ctx, cmd.Message(), profile, sess.Order, history)
	span.SetAttributes(attribute.String("intent", string(in.Kind())))
	h.metrics.Turn(string(in.Kind()))

	res := h.machine.Apply(ctx, in, sess.Order, profile)

	if res.Committed {
		history = history.Cleared()
	}
	history = history.Append(session.Entry{Role: session.RoleAgent, Text: res.Reply})

	if err = h.sessions.Save(ctx, cmd.UserID(), session.Session{Order: res.State, History: history}); err != nil {
		return HandleTurnResult{}, fmt.Errorf("save session of user %d: %w", cmd.UserID(), err)
	}

	h.logger.InfoContext(ctx, "turn handled",
		"user_id", cmd.UserID(), "intent", in.Kind(), "lines", len(res.State.LineItems()),
		"history", history.Len(), "committed", res.Committed)

	return HandleTurnResult{Reply: res.Reply, State: res.State, Intent: in.Kind()}, nil
}

func (h *HandleTurnCommandHandler) classify(
	ctx context.Context,
	message string,
	profile customer.Profile,
	state order.State,
	history session.History,
) intent.Intent {
	in, err := h.classifier.Classify(ctx, ports.ClassifyRequest{
		Utterance: message,
		Profile:   profile,
		Order:     state,
		History:   history.Recent(h.classifierWindow),
	})
	if err != nil || in == nil {
		h.logger.WarnContext(ctx, "classifier failed, continuing with neutral intent",
			"user_id", profile.ID, "error", err)
		h.metrics.ClassifierFailure()
		return intent.ClassifierFailure()
	}

	return in
}
