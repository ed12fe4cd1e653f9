// Package session holds the per-user conversation state persisted between turns.
package session

import (
	"fmt"
	"slices"

	"ordering/internal/core/domain/model/order"
)

// DefaultHistoryLimit bounds how many entries a History keeps.
const DefaultHistoryLimit = 20

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Entry is one utterance in the conversation.
type Entry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

func (e Entry) String() string {
	switch e.Role {
	case RoleUser:
		return "User: " + e.Text
	case RoleAgent:
		return "Agent: " + e.Text
	}
	return fmt.Sprintf("%s: %s", e.Role, e.Text)
}

// History is an ordered, bounded record of past utterances. Values are never
// shared: Append returns a new History.
type History struct {
	entries []Entry
	limit   int
}

func NewHistory(limit int, entries ...Entry) History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h := History{limit: limit}
	return h.Append(entries...)
}

// Append adds entries, dropping the oldest beyond the limit.
func (h History) Append(entries ...Entry) History {
	limit := h.limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	all := append(slices.Clone(h.entries), entries...)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return History{entries: all, limit: limit}
}

// Recent returns at most n of the newest entries, oldest first.
func (h History) Recent(n int) []Entry {
	if n <= 0 || len(h.entries) == 0 {
		return nil
	}
	start := max(len(h.entries)-n, 0)
	return slices.Clone(h.entries[start:])
}

func (h History) Entries() []Entry {
	return slices.Clone(h.entries)
}

func (h History) Len() int {
	return len(h.entries)
}

// Cleared returns an empty history with the same limit.
func (h History) Cleared() History {
	return History{limit: h.limit}
}

// Session pairs a user's order with the conversation that built it.
type Session struct {
	Order   order.State
	History History
}

// New starts a session with an empty history.
func New(state order.State, historyLimit int) Session {
	return Session{Order: state, History: NewHistory(historyLimit)}
}

// Document is the stored JSON form of a Session.
type Document struct {
	OrderState order.Snapshot `json:"orderState"`
	History    []Entry        `json:"history"`
}

func (s Session) Document() Document {
	history := s.History.Entries()
	if history == nil {
		history = []Entry{}
	}
	return Document{
		OrderState: s.Order.Snapshot(),
		History:    history,
	}
}

// FromDocument restores a Session, applying historyLimit to the stored entries.
func FromDocument(doc Document, historyLimit int) (Session, error) {
	state, err := order.FromSnapshot(doc.OrderState)
	if err != nil {
		return Session{}, fmt.Errorf("restore order state: %w", err)
	}
	return Session{
		Order:   state,
		History: NewHistory(historyLimit, doc.History...),
	}, nil
}
