package intent

import "strings"

// ClassifierApology replaces the reply when the classifier could not be reached
// or its output could not be understood.
const ClassifierApology = "I'm having trouble understanding right now. Could you say that again?"

// Parts is the loosely-typed classifier output before it is turned into a variant.
type Parts struct {
	Kind    string
	Items   []ItemRequest
	Address string
	Reply   string
}

// FromParts builds the variant for p.Kind. Anything unrecognised becomes Unknown.
func FromParts(p Parts) Intent {
	reply := strings.TrimSpace(p.Reply)

	switch Kind(strings.ToLower(strings.TrimSpace(p.Kind))) {
	case KindStartOrder:
		return StartOrder{ReplyText: reply}
	case KindAddItem:
		return AddItem{Items: p.Items, ReplyText: reply}
	case KindRemoveItem:
		return RemoveItem{Items: p.Items, ReplyText: reply}
	case KindMultiAction:
		return MultiAction{Items: p.Items, ReplyText: reply}
	case KindSetDeliveryLocation:
		return SetDeliveryLocation{Address: strings.TrimSpace(p.Address), ReplyText: reply}
	case KindRequestConfirmation:
		return RequestConfirmation{ReplyText: reply}
	case KindFinalizeOrder:
		return FinalizeOrder{ReplyText: reply}
	case KindAnswerQuestion:
		return AnswerQuestion{ReplyText: reply}
	case KindGreet:
		return Greet{ReplyText: reply}
	case KindNegativeResponse:
		return NegativeResponse{ReplyText: reply}
	default:
		return Unknown{RawKind: p.Kind, ReplyText: reply}
	}
}

// ClassifierFailure is the neutral intent substituted when classification fails.
func ClassifierFailure() Intent {
	return Unknown{RawKind: string(KindUnknown), ReplyText: ClassifierApology}
}
