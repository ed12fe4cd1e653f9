package statemachine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"
)

// Result is the outcome of one Apply call.
type Result struct {
	State order.State
	Reply string
	// Committed is true only when a finalize intent placed the order.
	Committed bool
	OrderID   kernel.UUID
}

// OrderStateMachine applies one classified intent to a draft order and words
// the reply. Only finalize_order writes anything; every other intent returns a
// new State and leaves storage untouched.
//
// Example:
//
//	machine := NewOrderStateMachine(catalog, history, finalizer, logger, nil)
//	res := machine.Apply(ctx, intent.AddItem{Items: items}, state, profile)
//	if res.Committed {
//	    log.Printf("placed order %s", res.OrderID)
//	}
//	fmt.Println(res.Reply)
type OrderStateMachine struct {
	catalog   ports.ProductCatalog
	history   ports.PurchaseHistory
	finalizer ports.OrderFinalizer
	logger    *slog.Logger
	metrics   *metrics.Collectors
}

// NewOrderStateMachine wires the catalog used for product lookup, the purchase
// history behind start_order, and the finalizer that places orders. A nil
// collectors disables metrics.
func NewOrderStateMachine(
	catalog ports.ProductCatalog,
	history ports.PurchaseHistory,
	finalizer ports.OrderFinalizer,
	logger *slog.Logger,
	collectors *metrics.Collectors,
) *OrderStateMachine {
	return &OrderStateMachine{
		catalog:   catalog,
		history:   history,
		finalizer: finalizer,
		logger:    logger.With("component", "order_state_machine"),
		metrics:   collectors,
	}
}

// Apply computes the next State and the reply for in. The reply is never blank.
func (m *OrderStateMachine) Apply(
	ctx context.Context,
	in intent.Intent,
	state order.State,
	profile customer.Profile,
) Result {
	res := m.dispatch(ctx, in, state, profile)

	if strings.TrimSpace(res.Reply) == "" {
		kind := "<nil>"
		if in != nil {
			kind = string(in.Kind())
		}
		m.logger.ErrorContext(ctx, "empty reply computed, using fallback",
			"intent", kind, "customer_id", profile.ID)
		m.metrics.EmptyReply()
		res.Reply = ReplyEmptyFallback
	}

	return res
}

func (m *OrderStateMachine) dispatch(
	ctx context.Context,
	in intent.Intent,
	state order.State,
	profile customer.Profile,
) Result {
	switch in := in.(type) {
	case intent.StartOrder:
		return m.startOrder(ctx, state, profile)

	case intent.AddItem:
		if len(in.Items) == 0 {
			return Result{State: state, Reply: replyAddDetailsMissing}
		}
		next, lines, asked := m.addItems(ctx, in.Items, state, profile)
		reply := strings.Join(lines, "\n")
		if !asked {
			reply += anythingElseSuffix
		}
		return Result{State: next, Reply: reply}

	case intent.RemoveItem:
		if len(in.Items) == 0 {
			return Result{State: state, Reply: replyRemoveDetailsMissing}
		}
		next, lines := m.removeItems(ctx, in.Items, state)
		return Result{State: next, Reply: strings.Join(lines, "\n")}

	case intent.MultiAction:
		if len(in.Items) == 0 {
			return Result{State: state, Reply: replyMultiDetailsMissing}
		}
		return m.multiAction(ctx, in.Items, state, profile)

	case intent.SetDeliveryLocation:
		if in.Address == "" {
			return Result{State: state, Reply: replyAddressMissing}
		}
		return Result{State: state.WithShippingAddress(in.Address), Reply: addressUpdatedReply(in.Address)}

	case intent.RequestConfirmation:
		return Result{State: state, Reply: confirmationReply(state)}

	case intent.FinalizeOrder:
		return m.finalize(ctx, in, state)

	case intent.AnswerQuestion:
		return Result{State: state, Reply: in.ReplyText}

	case intent.Greet:
		return m.greet(ctx, state, profile)

	case intent.NegativeResponse:
		if state.IsEmpty() {
			return Result{State: state, Reply: replyStandingBy}
		}
		return Result{State: state, Reply: replyReviewOffer}

	case intent.Unknown:
		if in.ReplyText != "" {
			return Result{State: state, Reply: in.ReplyText}
		}
		return Result{State: state, Reply: ReplyNotUnderstood}
	}

	return Result{State: state}
}

func (m *OrderStateMachine) startOrder(ctx context.Context, state order.State, profile customer.Profile) Result {
	next := order.NewState(state.CustomerID()).
		WithShippingAddress(profile.DefaultShippingAddress).
		WithPurchaseOrderNumber(profile.DefaultPONumber)
	reply := startedReply(profile.DefaultShippingAddress)

	usual, err := m.history.UsualItems(ctx, profile.ID)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to load usual items", "customer_id", profile.ID, "error", err)
		usual = nil
	}

	if len(usual) == 0 {
		return Result{State: next, Reply: reply + replyNoUsualOrder}
	}

	withUsual, err := next.WithLineItems(usual)
	if err != nil {
		m.logger.WarnContext(ctx, "usual items rejected", "customer_id", profile.ID, "error", err)
		return Result{State: next, Reply: reply + replyNoUsualOrder}
	}

	return Result{State: withUsual, Reply: reply + usualItemsReply(withUsual.LineItems())}
}

// addItems resolves and adds each request in turn. asked reports whether any
// request ended in a disambiguation question.
func (m *OrderStateMachine) addItems(
	ctx context.Context,
	items []intent.ItemRequest,
	state order.State,
	profile customer.Profile,
) (order.State, []string, bool) {
	next := seedDefaults(state, profile)
	lines := make([]string, 0, len(items))
	asked := false

	for _, req := range items {
		var line string
		var question bool
		next, line, question = m.addOne(ctx, req, next)
		lines = append(lines, line)
		asked = asked || question
	}

	return next, lines, asked
}

// seedDefaults fills the profile's address and PO into an empty, unaddressed order.
func seedDefaults(state order.State, profile customer.Profile) order.State {
	if !state.IsEmpty() {
		return state
	}
	if _, ok := state.ShippingAddress(); ok {
		return state
	}
	return state.
		WithShippingAddress(profile.DefaultShippingAddress).
		WithPurchaseOrderNumber(profile.DefaultPONumber)
}

func (m *OrderStateMachine) addOne(
	ctx context.Context,
	req intent.ItemRequest,
	state order.State,
) (order.State, string, bool) {
	phrase := strings.TrimSpace(req.ProductPhrase)
	if phrase == "" {
		return state, missingPhraseReply(), false
	}
	if req.Quantity < 1 {
		return state, invalidQuantityReply(req.Quantity, phrase), false
	}

	products, err := m.catalog.Find(ctx, phrase)
	if err != nil {
		m.logger.WarnContext(ctx, "catalog lookup failed", "phrase", phrase, "error", err)
		return state, lookupFailedReply(phrase), false
	}

	switch len(products) {
	case 0:
		return state, notFoundReply(phrase), false
	case 1:
	default:
		lead := "I found a few different types of \"" + phrase + "\"."
		return state, disambiguationReply(lead, catalog.Names(products)), true
	}

	product := products[0]
	if !product.HasStockFor(req.Quantity) {
		return state, shortStockReply(product), false
	}

	item, err := order.NewLineItem(product.ID, product.Name, req.Quantity, product.Price)
	if err != nil {
		m.logger.WarnContext(ctx, "catalog product cannot be ordered", "product_id", product.ID, "error", err)
		return state, lookupFailedReply(phrase), false
	}

	return state.AddItem(item), addedReply(req.Quantity, product.Name), false
}

func (m *OrderStateMachine) removeItems(
	ctx context.Context,
	items []intent.ItemRequest,
	state order.State,
) (order.State, []string) {
	next := state
	lines := make([]string, 0, len(items))

	for _, req := range items {
		var line string
		next, line = m.removeOne(ctx, req, next)
		lines = append(lines, line)
	}

	return next, lines
}

func (m *OrderStateMachine) removeOne(
	ctx context.Context,
	req intent.ItemRequest,
	state order.State,
) (order.State, string) {
	phrase := strings.TrimSpace(req.ProductPhrase)
	if phrase == "" {
		return state, missingPhraseReply()
	}

	products, err := m.catalog.Find(ctx, phrase)
	if err != nil {
		m.logger.WarnContext(ctx, "catalog lookup failed", "phrase", phrase, "error", err)
		return state, lookupFailedReply(phrase)
	}
	if len(products) == 0 {
		return state, notFoundInOrderReply(phrase)
	}

	var inOrder []order.LineItem
	for _, p := range products {
		if item, ok := state.Find(p.ID); ok {
			inOrder = append(inOrder, item)
		}
	}

	switch {
	case len(inOrder) == 0 && len(products) == 1:
		return state, notInOrderReply(products[0].Name)
	case len(inOrder) == 0:
		return state, notFoundInOrderReply(phrase)
	case len(inOrder) > 1:
		names := make([]string, len(inOrder))
		for i, item := range inOrder {
			names[i] = item.DisplayName()
		}
		lead := "Your order has a few different types of \"" + phrase + "\"."
		return state, disambiguationReply(lead, names)
	}

	if req.Quantity < 1 {
		return state, invalidQuantityReply(req.Quantity, phrase)
	}

	target := inOrder[0]
	next, remaining, err := state.RemoveQuantity(target.ProductID(), req.Quantity)
	if err != nil {
		return state, notInOrderReply(target.DisplayName())
	}

	return next, removedReply(req.Quantity, target.DisplayName(), remaining)
}

func (m *OrderStateMachine) multiAction(
	ctx context.Context,
	items []intent.ItemRequest,
	state order.State,
	profile customer.Profile,
) Result {
	next := state
	lines := make([]string, 0, len(items))

	for _, req := range items {
		var produced []string
		switch req.Action {
		case intent.ActionAdd:
			next, produced, _ = m.addItems(ctx, []intent.ItemRequest{req}, next, profile)
		case intent.ActionRemove:
			next, produced = m.removeItems(ctx, []intent.ItemRequest{req}, next)
		case intent.ActionNone:
			produced = []string{unknownActionReply(strings.TrimSpace(req.ProductPhrase))}
		}
		lines = append(lines, produced...)
	}

	return Result{State: next, Reply: strings.Join(lines, "\n")}
}

func (m *OrderStateMachine) finalize(ctx context.Context, in intent.FinalizeOrder, state order.State) Result {
	next, orderID, err := m.finalizer.Finalize(ctx, state)
	if err != nil {
		if errors.Is(err, order.ErrShippingAddressIsRequired) || errors.Is(err, order.ErrOrderHasNoLineItems) {
			return Result{State: state, Reply: replyNotFinalizable}
		}
		m.logger.ErrorContext(ctx, "order finalization failed", "customer_id", state.CustomerID(), "error", err)
		return Result{State: state, Reply: finalizeFailedReply(err)}
	}

	reply := in.ReplyText
	if reply == "" {
		reply = confirmedReply(orderID.String())
	}

	return Result{State: next, Reply: reply, Committed: true, OrderID: orderID}
}

func (m *OrderStateMachine) greet(ctx context.Context, state order.State, profile customer.Profile) Result {
	frequent, err := m.history.MostFrequent(ctx, profile.ID, ports.DefaultFrequencyWindowDays)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to load order history", "customer_id", profile.ID, "error", err)
		frequent = nil
	}

	product := ""
	if frequent != nil {
		product = frequent.Name
	}

	return Result{State: state, Reply: greetingReply(profile.Name, product)}
}
