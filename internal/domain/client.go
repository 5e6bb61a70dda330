package domain

import (
	"strings"
	"time"
)

// DefaultClientName is shown when the portal does not return a customer name.
const DefaultClientName = "לקוח"

type ClientID string

func ParseClientID(raw string) (ClientID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyClientID
	}

	return ClientID(trimmed), nil
}

// Snapshot is the complete state of one customer as returned by a single successful load.
type Snapshot struct {
	ClientID      ClientID
	ClientName    string
	Orders        []Order
	ChatTemplates []string
	LoadedAt      time.Time
}

func (s Snapshot) DisplayName() string {
	if name := strings.TrimSpace(s.ClientName); name != "" {
		return name
	}

	return DefaultClientName
}

func (s Snapshot) ActiveOrders() []Order {
	return ActiveOrders(s.Orders)
}

func (s Snapshot) Addresses() []string {
	return Addresses(s.Orders)
}

// History returns every order, newest first. Orders without a creation date keep their
// relative position at the end.
func (s Snapshot) History() []Order {
	return SortHistory(s.Orders)
}

// Clone returns a deep copy so callers can never alias the store's snapshot.
func (s Snapshot) Clone() Snapshot {
	clone := s
	if s.Orders != nil {
		clone.Orders = make([]Order, len(s.Orders))
		for i, order := range s.Orders {
			clone.Orders[i] = order.clone()
		}
	}
	if s.ChatTemplates != nil {
		clone.ChatTemplates = append([]string(nil), s.ChatTemplates...)
	}

	return clone
}
