package application

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
)

type clientDataPayload struct {
	ClientName    string          `json:"clientName"`
	Orders        *[]orderPayload `json:"orders"`
	ActiveOrders  []orderPayload  `json:"activeOrders"`
	History       []orderPayload  `json:"history"`
	ChatTemplates []string        `json:"chatTemplates"`
}

type orderPayload struct {
	OrderID          domain.OrderID `json:"orderId"`
	Type             string         `json:"type"`
	Address          string         `json:"address"`
	Status           string         `json:"status"`
	CreatedAt        string         `json:"createdAt"`
	Date             string         `json:"date"`
	EstimatedArrival string         `json:"estimatedArrival"`
}

type mutationPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const statusSuccess = "success"

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateOnly}

// decodeSnapshot builds a snapshot from a getClientData payload. When orders is absent the
// older activeOrders/history pair is merged, with history rows defaulting to closed.
func decodeSnapshot(id domain.ClientID, raw json.RawMessage, loadedAt time.Time) (domain.Snapshot, error) {
	var payload clientDataPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: decode client data: %v", domain.ErrMalformedResponse, err)
	}

	var orders []domain.Order
	if payload.Orders != nil {
		orders = make([]domain.Order, 0, len(*payload.Orders))
		for _, order := range *payload.Orders {
			orders = append(orders, order.toDomain(""))
		}
	} else {
		orders = make([]domain.Order, 0, len(payload.ActiveOrders)+len(payload.History))
		seen := make(map[domain.OrderID]struct{}, len(payload.ActiveOrders))
		for _, order := range payload.ActiveOrders {
			converted := order.toDomain(domain.StatusOpen)
			if converted.ID != "" {
				seen[converted.ID] = struct{}{}
			}
			orders = append(orders, converted)
		}
		for _, order := range payload.History {
			converted := order.toDomain(domain.StatusClosed)
			if _, dup := seen[converted.ID]; dup && converted.ID != "" {
				continue
			}
			orders = append(orders, converted)
		}
	}

	return domain.Snapshot{
		ClientID:      id,
		ClientName:    strings.TrimSpace(payload.ClientName),
		Orders:        orders,
		ChatTemplates: domain.ResolveChatTemplates(payload.ChatTemplates),
		LoadedAt:      loadedAt,
	}, nil
}

func (p orderPayload) toDomain(defaultStatus domain.Status) domain.Order {
	status := domain.Status(strings.TrimSpace(p.Status))
	if status == "" {
		status = defaultStatus
	}

	created := parseDate(p.CreatedAt)
	if created.IsZero() {
		created = parseDate(p.Date)
	}

	order := domain.Order{
		ID:        p.OrderID,
		Type:      strings.TrimSpace(p.Type),
		Address:   strings.TrimSpace(p.Address),
		Status:    status,
		CreatedAt: created,
	}
	if eta := parseDate(p.EstimatedArrival); !eta.IsZero() {
		order.EstimatedArrival = &eta
	}

	return order
}

func parseDate(raw string) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed
		}
	}

	return time.Time{}
}

func decodeMutation(action domain.Action, raw json.RawMessage) error {
	var payload mutationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &domain.NetworkError{Action: action, Err: fmt.Errorf("%w: decode mutation result: %v", domain.ErrMalformedResponse, err)}
	}

	if !strings.EqualFold(strings.TrimSpace(payload.Status), statusSuccess) {
		message := strings.TrimSpace(payload.Message)
		if message == "" {
			message = fmt.Sprintf("unexpected status %q", payload.Status)
		}
		return &domain.APIError{Action: action, Message: message}
	}

	return nil
}
