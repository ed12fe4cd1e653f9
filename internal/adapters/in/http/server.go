package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgChatFieldsRequired = "Message and userId are required."
	msgSessionNotFound    = "Session not found. Please log in again."
	msgUserNotFound       = "User not found"
	msgInternal           = "Something went wrong on our end."
)

type TurnHandler interface {
	Handle(ctx context.Context, cmd commands.HandleTurnCommand) (commands.HandleTurnResult, error)
}

type StartSessionHandler interface {
	Handle(ctx context.Context, cmd commands.StartSessionCommand) (customer.Profile, error)
}

type GetSessionHandler interface {
	Handle(ctx context.Context, query queries.GetSessionQuery) (queries.GetSessionQueryResponse, error)
}

type ListCustomerOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListCustomerOrdersQuery) ([]queries.ListCustomerOrdersQueryResponse, error)
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	// Command handlers
	turnHandler         TurnHandler
	startSessionHandler StartSessionHandler

	// Query handlers
	getSessionHandler         GetSessionHandler
	listCustomerOrdersHandler ListCustomerOrdersHandler

	logger *slog.Logger
}

func NewServer(
	turnHandler TurnHandler,
	startSessionHandler StartSessionHandler,
	getSessionHandler GetSessionHandler,
	listCustomerOrdersHandler ListCustomerOrdersHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		turnHandler:               turnHandler,
		startSessionHandler:       startSessionHandler,
		getSessionHandler:         getSessionHandler,
		listCustomerOrdersHandler: listCustomerOrdersHandler,
		logger:                    logger.With("component", "HTTPServer"),
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Error: message})
}

// PostChat handles POST /api/chat.
func (s *Server) PostChat(ctx echo.Context) error {
	var req ChatRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, msgChatFieldsRequired)
	}

	cmd, err := commands.NewHandleTurnCommand(int64(req.UserID), req.Message)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, msgChatFieldsRequired)
	}

	result, err := s.turnHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrSessionNotFound):
		return errorJSON(ctx, http.StatusNotFound, msgSessionNotFound)
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, msgUserNotFound)
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "chat turn failed", "user_id", req.UserID, "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, msgInternal)
	}

	return ctx.JSON(http.StatusOK, ChatResponse{
		Reply:      result.Reply,
		OrderState: result.State.Snapshot(),
	})
}

// GetUser handles GET /api/user/:id. A successful lookup resets the session.
func (s *Server) GetUser(ctx echo.Context, id int64) error {
	cmd, err := commands.NewStartSessionCommand(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	profile, err := s.startSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorJSON(ctx, http.StatusNotFound, msgUserNotFound)
		}
		s.logger.ErrorContext(ctx.Request().Context(), "start session failed", "user_id", id, "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Could not fetch user.")
	}

	return ctx.JSON(http.StatusOK, userProfileFrom(profile))
}

// GetSession handles GET /api/sessions/:userId.
func (s *Server) GetSession(ctx echo.Context, userID int64) error {
	query, err := queries.NewGetSessionQuery(userID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getSessionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return errorJSON(ctx, http.StatusNotFound, msgSessionNotFound)
		}
		s.logger.ErrorContext(ctx.Request().Context(), "read session failed", "user_id", userID, "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, msgInternal)
	}

	history := resp.History
	if history == nil {
		history = []session.Entry{}
	}
	return ctx.JSON(http.StatusOK, SessionView{OrderState: resp.OrderState, History: history})
}

// GetCustomerOrders handles GET /api/customers/:id/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context, id int64, params GetCustomerOrdersParams) error {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListCustomerOrdersQuery(id, limit)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	orders, err := s.listCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "list orders failed", "customer_id", id, "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = orderSummaryFrom(o)
	}
	return ctx.JSON(http.StatusOK, response)
}
