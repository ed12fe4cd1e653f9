package statemachine

import (
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/order"
)

const (
	anythingElseSuffix     = "\n\nAnything else to add?"
	disambiguationQuestion = "Which one did you mean?"

	replyAddDetailsMissing    = "I understood you wanted to add items, but I couldn't process the details."
	replyRemoveDetailsMissing = "I understood you wanted to remove items, but I couldn't process the details."
	replyMultiDetailsMissing  = "I understood you wanted to change several items, but I couldn't process the details."
	replyAddressMissing       = "I couldn't determine the new address. Please be more specific."
	replyEmptyOrder           = "Your order is empty."
	replyNotFinalizable       = "Cannot finalize order. Shipping address and items are required."
	replyReviewOffer          = "Okay. Would you like to review your order?"
	replyStandingBy           = "Okay. Let me know what you need."
	replyNoUsualOrder         = "\nYou don't have a pre-defined usual order. What would you like to add?"
	replyUsualItemsFollowUp   = "\nWould you like to review the order or add more items?"

	// ReplyNotUnderstood answers intents the machine has no rule for.
	ReplyNotUnderstood = "I'm not sure how to handle that. Could you rephrase?"
	// ReplyEmptyFallback replaces any reply that would otherwise be blank.
	ReplyEmptyFallback = "I'm sorry, I'm having trouble understanding. Could you please rephrase?"

	notSet = "Not set"
)

func addedReply(quantity int, name string) string {
	return fmt.Sprintf("Added %d of %s.", quantity, name)
}

func notFoundReply(phrase string) string {
	return fmt.Sprintf("Couldn't find a product matching \"%s\".", phrase)
}

func notFoundInOrderReply(phrase string) string {
	return fmt.Sprintf("I couldn't find a product matching \"%s\" in your order.", phrase)
}

func lookupFailedReply(phrase string) string {
	return fmt.Sprintf("I couldn't look up \"%s\" right now.", phrase)
}

func invalidQuantityReply(quantity int, phrase string) string {
	return fmt.Sprintf("%d is not a valid quantity for \"%s\".", quantity, phrase)
}

func missingPhraseReply() string {
	return "I couldn't tell which product you meant."
}

func unknownActionReply(phrase string) string {
	return fmt.Sprintf("I couldn't tell whether to add or remove \"%s\".", phrase)
}

func shortStockReply(p catalog.Product) string {
	return fmt.Sprintf("Sorry, only %d units of %s in stock.", p.Stock, p.Name)
}

func disambiguationReply(lead string, names []string) string {
	var b strings.Builder
	b.WriteString(lead)
	b.WriteString(" ")
	b.WriteString(disambiguationQuestion)
	for _, name := range names {
		b.WriteString("\n- ")
		b.WriteString(name)
	}
	return b.String()
}

func removedReply(quantity int, name string, remaining int) string {
	reply := fmt.Sprintf("Removed %d of %s.", quantity, name)
	if remaining == 0 {
		reply += fmt.Sprintf("\n%s has been fully removed from your order.", name)
	}
	return reply
}

func notInOrderReply(name string) string {
	return fmt.Sprintf("%s is not in your current order.", name)
}

func addressUpdatedReply(address string) string {
	return fmt.Sprintf("Okay, I've updated the shipping address to: %s.", address)
}

func startedReply(address string) string {
	if address == "" {
		return "I've started a new order."
	}
	return fmt.Sprintf("I've started an order for your default office: %s.", address)
}

func usualItemsReply(items []order.LineItem) string {
	var b strings.Builder
	b.WriteString("\n\nI've added your usual items to the cart:")
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %d x %s", item.Quantity(), item.DisplayName())
	}
	b.WriteString("\n")
	b.WriteString(replyUsualItemsFollowUp)
	return b.String()
}

func greetingReply(name, frequentProduct string) string {
	if frequentProduct != "" {
		return fmt.Sprintf(
			"Welcome back, %s! I see you frequently order the \"%s\". Would you like to add it to a new order?",
			name, frequentProduct,
		)
	}
	return fmt.Sprintf("Hello %s! How can I help you today?", name)
}

func confirmedReply(orderID string) string {
	return fmt.Sprintf("Order #%s has been confirmed and is being processed.", orderID)
}

func finalizeFailedReply(err error) string {
	return fmt.Sprintf("There was an error processing your order: %s. Please try again.", err.Error())
}

// confirmationReply renders the order summary shown before finalizing.
func confirmationReply(state order.State) string {
	if state.IsEmpty() {
		return replyEmptyOrder
	}

	po, ok := state.PurchaseOrderNumber()
	if !ok {
		po = notSet
	}
	address, ok := state.ShippingAddress()
	if !ok {
		address = notSet
	}

	var b strings.Builder
	b.WriteString("Please confirm your order:\n")
	fmt.Fprintf(&b, "PO Number: %s\n", po)
	fmt.Fprintf(&b, "Shipping to: %s\n", address)
	b.WriteString("Items:\n")
	for _, item := range state.LineItems() {
		fmt.Fprintf(&b, "  - %d x %s @ %s\n", item.Quantity(), item.DisplayName(), item.UnitPrice())
	}
	fmt.Fprintf(&b, "Order Total: %s\n\nIs this correct?", state.Total())
	return b.String()
}
