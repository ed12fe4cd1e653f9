// Package intent defines the classified purpose of one user utterance as a
// closed set of variants. Every variant implements Intent; the unexported marker
// method keeps the set closed so a type switch over the variants is total once
// it handles each type below.
package intent

import "strings"

// Kind is the wire name of an intent as produced by the classifier.
type Kind string

const (
	KindStartOrder          Kind = "start_order"
	KindAddItem             Kind = "add_item"
	KindRemoveItem          Kind = "remove_item"
	KindMultiAction         Kind = "multi_action"
	KindSetDeliveryLocation Kind = "set_delivery_location"
	KindRequestConfirmation Kind = "request_confirmation"
	KindFinalizeOrder       Kind = "finalize_order"
	KindAnswerQuestion      Kind = "answer_question"
	KindGreet               Kind = "greet"
	KindNegativeResponse    Kind = "negative_response"
	KindUnknown             Kind = "other"
)

// Kinds lists every recognised kind except KindUnknown.
func Kinds() []Kind {
	return []Kind{
		KindStartOrder, KindAddItem, KindRemoveItem, KindMultiAction, KindSetDeliveryLocation,
		KindRequestConfirmation, KindFinalizeOrder, KindAnswerQuestion, KindGreet, KindNegativeResponse,
	}
}

// Action tags an item inside a multi_action batch.
type Action int

const (
	ActionNone Action = iota
	ActionAdd
	ActionRemove
)

// ParseAction maps "add"/"remove" (any case) to an Action.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return ActionAdd
	case "remove":
		return ActionRemove
	default:
		return ActionNone
	}
}

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionNone:
		return ""
	}
	return ""
}

// ItemRequest is one product phrase and quantity extracted from an utterance.
type ItemRequest struct {
	ProductPhrase string
	Quantity      int
	Action        Action
}

// Intent is implemented by exactly the variant types of this package.
type Intent interface {
	Kind() Kind
	// Reply is the classifier's own natural-language reply, possibly empty.
	Reply() string
	isIntent()
}

// StartOrder asks to begin the customer's usual order.
type StartOrder struct{ ReplyText string }

// AddItem asks to add each requested product.
//
//	in := AddItem{Items: []ItemRequest{{ProductPhrase: "blue pen", Quantity: 5}}}
type AddItem struct {
	Items     []ItemRequest
	ReplyText string
}

// RemoveItem asks to take quantities off existing lines.
type RemoveItem struct {
	Items     []ItemRequest
	ReplyText string
}

// MultiAction carries items each tagged with ActionAdd or ActionRemove.
type MultiAction struct {
	Items     []ItemRequest
	ReplyText string
}

// SetDeliveryLocation replaces the shipping address with Address.
type SetDeliveryLocation struct {
	Address   string
	ReplyText string
}

// RequestConfirmation asks for the order summary.
type RequestConfirmation struct{ ReplyText string }

// FinalizeOrder confirms the order and triggers placement.
type FinalizeOrder struct{ ReplyText string }

// AnswerQuestion is a general question; ReplyText carries the answer.
type AnswerQuestion struct{ ReplyText string }

type Greet struct{ ReplyText string }

// NegativeResponse is a bare "no" with no new command attached.
type NegativeResponse struct{ ReplyText string }

// Unknown absorbs "other", unrecognised kinds and classifier failures.
type Unknown struct {
	RawKind   string
	ReplyText string
}

func (StartOrder) Kind() Kind          { return KindStartOrder }
func (AddItem) Kind() Kind             { return KindAddItem }
func (RemoveItem) Kind() Kind          { return KindRemoveItem }
func (MultiAction) Kind() Kind         { return KindMultiAction }
func (SetDeliveryLocation) Kind() Kind { return KindSetDeliveryLocation }
func (RequestConfirmation) Kind() Kind { return KindRequestConfirmation }
func (FinalizeOrder) Kind() Kind       { return KindFinalizeOrder }
func (AnswerQuestion) Kind() Kind      { return KindAnswerQuestion }
func (Greet) Kind() Kind               { return KindGreet }
func (NegativeResponse) Kind() Kind    { return KindNegativeResponse }
func (Unknown) Kind() Kind             { return KindUnknown }

func (i StartOrder) Reply() string          { return i.ReplyText }
func (i AddItem) Reply() string             { return i.ReplyText }
func (i RemoveItem) Reply() string          { return i.ReplyText }
func (i MultiAction) Reply() string         { return i.ReplyText }
func (i SetDeliveryLocation) Reply() string { return i.ReplyText }
func (i RequestConfirmation) Reply() string { return i.ReplyText }
func (i FinalizeOrder) Reply() string       { return i.ReplyText }
func (i AnswerQuestion) Reply() string      { return i.ReplyText }
func (i Greet) Reply() string               { return i.ReplyText }
func (i NegativeResponse) Reply() string    { return i.ReplyText }
func (i Unknown) Reply() string             { return i.ReplyText }

func (StartOrder) isIntent()          {}
func (AddItem) isIntent()             {}
func (RemoveItem) isIntent()          {}
func (MultiAction) isIntent()         {}
func (SetDeliveryLocation) isIntent() {}
func (RequestConfirmation) isIntent() {}
func (FinalizeOrder) isIntent()       {}
func (AnswerQuestion) isIntent()      {}
func (Greet) isIntent()               {}
func (NegativeResponse) isIntent()    {}
func (Unknown) isIntent()             {}
