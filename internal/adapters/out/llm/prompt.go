package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/ports"
)

var intentDescriptions = map[intent.Kind]string{
	intent.KindAddItem:             "the user wants to add products.",
	intent.KindRemoveItem:          "the user wants to remove products.",
	intent.KindStartOrder:          `the user wants to begin their "usual" order.`,
	intent.KindSetDeliveryLocation: "the user wants to change the shipping address.",
	intent.KindRequestConfirmation: "the user wants to review the order.",
	intent.KindFinalizeOrder:       "the user confirms the order.",
	intent.KindAnswerQuestion:      "the user asks a general question.",
	intent.KindGreet:               "the user is saying hello or has just logged in.",
	intent.KindNegativeResponse:    "the user is saying no.",
	intent.KindMultiAction:         "the message contains more than one of these intents.",
	intent.KindUnknown:             "the intent is unclear.",
}

var systemPrompt = buildSystemPrompt()

// buildSystemPrompt lists every intent the parser understands, with other last.
func buildSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a B2B order processing assistant. Your only job is to understand the user's intent and extract key information.\n\nINTENTS:\n")
	for _, kind := range append(intent.Kinds(), intent.KindUnknown) {
		fmt.Fprintf(&b, "- %s: %s\n", kind, intentDescriptions[kind])
	}
	b.WriteString("\n")
	b.WriteString(instructions)
	return b.String()
}

const instructions = `INSTRUCTIONS:
- Base your answers exclusively on the CONTEXT provided.
- If the user says "no" but then gives a new command (e.g. "no, i want my usual order"), the intent is the new command, not negative_response or multi_action.
- If the message adds AND removes items, the intent MUST be multi_action and every object in entities.items MUST carry "action": "add" or "remove".
- For add_item, remove_item and multi_action put an array of {"productName", "quantity"} objects in entities.items.
- Simplify every productName to its core singular keywords ("smart watches" becomes "Smart Watch").
- For set_delivery_location put the new address in entities.shippingAddress.
- Put any natural-language answer in "reply". Do not add proactive questions.
- Respond with ONLY a single JSON object: {"intent": ..., "entities": {...}, "reply": ...}.`

type promptContext struct {
	Profile profileView `json:"userProfile"`
	Order   any         `json:"currentOrderState"`
}

type profileView struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	DefaultShippingAddress string `json:"defaultShippingAddress"`
	DefaultPONumber        string `json:"defaultPoNumber,omitempty"`
}

// userPrompt renders the context block sent with each utterance.
func userPrompt(req ports.ClassifyRequest) (string, error) {
	ctxJSON, err := json.Marshal(promptContext{
		Profile: profileView{
			ID:                     req.Profile.ID,
			Name:                   req.Profile.Name,
			DefaultShippingAddress: req.Profile.DefaultShippingAddress,
			DefaultPONumber:        req.Profile.DefaultPONumber,
		},
		Order: req.Order.Snapshot(),
	})
	if err != nil {
		return "", fmt.Errorf("encode classifier context: %w", err)
	}

	var b strings.Builder
	b.WriteString("CONTEXT:\n")
	b.Write(ctxJSON)
	b.WriteString("\n\nCONVERSATION HISTORY:\n")
	for _, entry := range req.History {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nLATEST USER MESSAGE: %q\n", req.Utterance)
	return b.String(), nil
}
