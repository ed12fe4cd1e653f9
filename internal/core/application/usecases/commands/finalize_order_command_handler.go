package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ordering/commands")

// FinalizeOrderResult is what a successful commit hands back.
type FinalizeOrderResult struct {
	OrderID kernel.UUID
	// State is the reset order the session continues with.
	State order.State
}

// FinalizeOrderCommandHandler places an order and takes its stock in one
// transaction. Each product's stock row is locked before it is read, in
// ascending product id order, so two placements that share products always
// queue on the first shared row instead of deadlocking.
//
//	handler := NewFinalizeOrderCommandHandler(uowFactory, logger, collectors)
//	cmd, _ := NewFinalizeOrderCommand(state)
//	result, err := handler.Handle(ctx, cmd)
//	var short *order.InsufficientStockError
//	if errors.As(err, &short) {
//	    // nothing was written, state is still the caller's
//	}
type FinalizeOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	logger     *slog.Logger
	metrics    *metrics.Collectors
}

func NewFinalizeOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	logger *slog.Logger,
	collectors *metrics.Collectors,
) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "finalize_order"),
		metrics:    collectors,
	}
}

// Handle validates the order, then writes the header, locks each product's
// stock, writes each line and decrements stock. Any failure rolls back all of it.
func (h *FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (FinalizeOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return FinalizeOrderResult{}, err
	}

	state := cmd.State()
	if err := state.ValidateFinalizable(); err != nil {
		h.metrics.Finalization(metrics.OutcomeRejected)
		return FinalizeOrderResult{}, fmt.Errorf("%w: %w", ErrOrderNotFinalizable, err)
	}

	ctx, span := tracer.Start(ctx, "FinalizeOrder")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("customer.id", state.CustomerID()),
		attribute.Int("order.lines", len(state.LineItems())),
	)

	placed, err := order.NewPlacedOrder(kernel.NewUUID(), state)
	if err != nil {
		return FinalizeOrderResult{}, h.fail(ctx, span, state, err)
	}

	if err = h.place(ctx, placed); err != nil {
		return FinalizeOrderResult{}, h.fail(ctx, span, state, err)
	}

	h.metrics.Finalization(metrics.OutcomeCommitted)
	h.logger.InfoContext(ctx, "order placed",
		"order_id", placed.ID().String(), "customer_id", state.CustomerID(), "lines", len(placed.Lines()))

	return FinalizeOrderResult{OrderID: placed.ID(), State: state.Reset()}, nil
}

func (h *FinalizeOrderCommandHandler) place(ctx context.Context, placed *order.PlacedOrder) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err := orderRepo.Add(ctx, placed); err != nil {
		return err
	}

	stockRepo := uow.StockRepository()
	for _, line := range placed.LinesByProduct() {
		available, err := stockRepo.LockStock(ctx, line.ProductID())
		if err != nil {
			return err
		}

		if available < line.Quantity() {
			return order.NewInsufficientStockError(line, available)
		}

		if err = orderRepo.AddLine(ctx, placed.ID(), line); err != nil {
			return err
		}

		if err = stockRepo.DecrementStock(ctx, line.ProductID(), line.Quantity()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *FinalizeOrderCommandHandler) fail(ctx context.Context, span trace.Span, state order.State, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var short *order.InsufficientStockError
	if errors.As(err, &short) {
		h.metrics.Finalization(metrics.OutcomeInsufficientStock)
		h.logger.WarnContext(ctx, "order rejected for stock",
			"customer_id", state.CustomerID(), "product_id", short.ProductID,
			"available", short.Available, "requested", short.Requested)
		return err
	}

	h.metrics.Finalization(metrics.OutcomeFailed)
	h.logger.ErrorContext(ctx, "order placement failed", "customer_id", state.CustomerID(), "error", err)
	return err
}
