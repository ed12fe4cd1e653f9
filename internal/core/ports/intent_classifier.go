package ports

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
)

// ClassifyRequest is everything the classifier may look at for one utterance.
type ClassifyRequest struct {
	Utterance string
	Profile   customer.Profile
	Order     order.State
	History   []session.Entry
}

// ErrUnparsableClassification is wrapped when the classifier answered with
// content that does not name an intent.
var ErrUnparsableClassification = errors.New("unparsable classifier output")

// IntentClassifier maps an utterance to an Intent. Any error, including
// ErrUnparsableClassification, is a classifier failure for the turn.
type IntentClassifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (intent.Intent, error)
}
