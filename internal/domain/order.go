package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

type OrderID string

// UnmarshalJSON accepts both numeric and string order identifiers.
func (id *OrderID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("decode order id: %w", err)
		}
		*id = OrderID(strings.TrimSpace(raw))
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("decode order id: %w", err)
	}
	*id = OrderID(number.String())
	return nil
}

type Status string

const (
	StatusOpen   Status = "פתוח"
	StatusClosed Status = "סגור"
)

func (s Status) Closed() bool {
	trimmed := strings.TrimSpace(string(s))
	return trimmed == string(StatusClosed) || strings.EqualFold(trimmed, "closed")
}

// Order types offered by the new-order form.
const (
	OrderTypePickup    = "פינוי"
	OrderTypeSwap      = "החלפה"
	OrderTypePlacement = "הצבה"
)

var OrderTypes = []string{OrderTypePlacement, OrderTypeSwap, OrderTypePickup}

// AddressPlaceholder is the empty choice at the top of the address selector.
const AddressPlaceholder = "בחר כתובת"

type Order struct {
	ID               OrderID
	Type             string
	Address          string
	Status           Status
	CreatedAt        time.Time
	EstimatedArrival *time.Time
}

func (o Order) clone() Order {
	if o.EstimatedArrival != nil {
		eta := *o.EstimatedArrival
		o.EstimatedArrival = &eta
	}
	return o
}

func ActiveOrders(orders []Order) []Order {
	active := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order.Status.Closed() {
			continue
		}
		active = append(active, order.clone())
	}

	return active
}

func Addresses(orders []Order) []string {
	addresses := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		address := strings.TrimSpace(order.Address)
		if address == "" {
			continue
		}
		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		addresses = append(addresses, address)
	}

	return addresses
}

func SortHistory(orders []Order) []Order {
	history := make([]Order, 0, len(orders))
	for _, order := range orders {
		history = append(history, order.clone())
	}

	sort.SliceStable(history, func(i, j int) bool {
		a, b := history[i].CreatedAt, history[j].CreatedAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})

	return history
}
