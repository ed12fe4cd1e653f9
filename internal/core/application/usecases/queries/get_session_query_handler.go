package queries

import (
	"context"

	"ordering/internal/core/ports"
)

type GetSessionQueryHandler struct {
	sessions ports.SessionStore
}

func NewGetSessionQueryHandler(sessions ports.SessionStore) GetSessionQueryHandler {
	return GetSessionQueryHandler{sessions: sessions}
}

// Handle returns ports.ErrSessionNotFound when the user has no session.
func (h GetSessionQueryHandler) Handle(ctx context.Context, query GetSessionQuery) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	sess, err := h.sessions.Load(ctx, query.UserID())
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	doc := sess.Document()
	return GetSessionQueryResponse{
		OrderState: doc.OrderState,
		History:    doc.History,
	}, nil
}
