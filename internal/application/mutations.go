package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/logging"
	"github.com/bnema/container-portal-cli/internal/ports"
	"github.com/rs/zerolog"
)

type MutationName string

const (
	MutationSubmitOrder      MutationName = "submitOrder"
	MutationSendChatMessage  MutationName = "sendChatMessage"
	MutationSendChatTemplate MutationName = "sendChatTemplate"
)

const (
	NoticeOrderSubmitted = "Order submitted."
	NoticeMessageSent    = "Message sent."
)

type OrderRequest struct {
	Type string
	// TypedAddress wins over SelectedAddress when it is not blank.
	TypedAddress    string
	SelectedAddress string
	Notes           string
}

// Address resolves the address the order goes to, or "" when none was given.
func (r OrderRequest) Address() string {
	if typed := strings.TrimSpace(r.TypedAddress); typed != "" {
		return typed
	}

	selected := strings.TrimSpace(r.SelectedAddress)
	if selected == domain.AddressPlaceholder {
		return ""
	}

	return selected
}

// Outcome describes what a successful mutation means for the dashboard. It carries no
// rendering itself; Dashboard.Apply turns it into display updates.
type Outcome struct {
	Mutation MutationName
	ClientID domain.ClientID
	Message  string
	// Skipped is set when the input was blank and nothing was sent.
	Skipped    bool
	ClearInput bool
	// Refreshed is set once the store has reloaded after the mutation.
	Refreshed bool
	// Navigate names the surface to focus, or "" to stay put.
	Navigate domain.Surface
}

type Mutations struct {
	gateway     ports.Gateway
	store       *Store
	orderAction domain.Action
	logger      zerolog.Logger
}

func NewMutations(gateway ports.Gateway, store *Store, orderAction domain.Action, logger zerolog.Logger) *Mutations {
	if !orderAction.IsOrderAction() {
		orderAction = domain.ActionCreateNewOrder
	}

	return &Mutations{
		gateway:     gateway,
		store:       store,
		orderAction: orderAction,
		logger:      logging.ForPackage(logger, "mutations"),
	}
}

func (m *Mutations) SubmitOrder(ctx context.Context, request OrderRequest) (Outcome, error) {
	orderType := strings.TrimSpace(request.Type)
	if orderType == "" {
		return Outcome{}, submitError(MutationSubmitOrder, &domain.ValidationError{Field: "type", Message: "choose an order type"})
	}
	address := request.Address()
	if address == "" {
		return Outcome{}, submitError(MutationSubmitOrder, &domain.ValidationError{Field: "address", Message: "type an address or pick one of your addresses"})
	}

	snapshot, ok := m.store.Current()
	if !ok {
		return Outcome{}, submitError(MutationSubmitOrder, domain.ErrNotLoaded)
	}

	params := map[string]string{
		paramClientID: string(snapshot.ClientID),
		"clientName":  snapshot.DisplayName(),
		"address":     address,
	}
	notes := strings.TrimSpace(request.Notes)
	if m.orderAction == domain.ActionClientRequest {
		params["requestType"] = orderType
		params["details"] = notes
	} else {
		params["type"] = orderType
		params["notes"] = notes
	}

	if err := m.send(ctx, m.orderAction, params); err != nil {
		return Outcome{}, submitError(MutationSubmitOrder, err)
	}

	m.logger.Info().
		Str(logging.ClientField, string(snapshot.ClientID)).
		Str(logging.ActionField, string(m.orderAction)).
		Msg("order submitted")

	return Outcome{
		Mutation: MutationSubmitOrder,
		ClientID: snapshot.ClientID,
		Message:  NoticeOrderSubmitted,
	}, nil
}

// SendChatMessage sends free text to the office. Blank text is skipped without a request.
func (m *Mutations) SendChatMessage(ctx context.Context, text string) (Outcome, error) {
	return m.sendChat(ctx, MutationSendChatMessage, text)
}

// SendChatTemplate sends the template at the 1-based index of the loaded catalog.
func (m *Mutations) SendChatTemplate(ctx context.Context, index int) (Outcome, error) {
	snapshot, ok := m.store.Current()
	if !ok {
		return Outcome{}, submitError(MutationSendChatTemplate, domain.ErrNotLoaded)
	}
	if index < 1 || index > len(snapshot.ChatTemplates) {
		return Outcome{}, submitError(MutationSendChatTemplate, fmt.Errorf("%w: %d of %d", domain.ErrTemplateNotFound, index, len(snapshot.ChatTemplates)))
	}

	return m.sendChat(ctx, MutationSendChatTemplate, snapshot.ChatTemplates[index-1])
}

func (m *Mutations) sendChat(ctx context.Context, name MutationName, text string) (Outcome, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return Outcome{Mutation: name, Skipped: true}, nil
	}

	snapshot, ok := m.store.Current()
	if !ok {
		return Outcome{}, submitError(name, domain.ErrNotLoaded)
	}

	params := map[string]string{
		paramClientID: string(snapshot.ClientID),
		"message":     message,
	}
	if err := m.send(ctx, domain.ActionSendChatMessage, params); err != nil {
		return Outcome{}, submitError(name, err)
	}

	m.logger.Info().Str(logging.ClientField, string(snapshot.ClientID)).Msg("chat message sent")

	return Outcome{
		Mutation:   name,
		ClientID:   snapshot.ClientID,
		Message:    NoticeMessageSent,
		ClearInput: true,
	}, nil
}

func (m *Mutations) send(ctx context.Context, action domain.Action, params map[string]string) error {
	raw, err := m.gateway.Request(ctx, action, params)
	if err != nil {
		return err
	}

	return decodeMutation(action, raw)
}

func submitError(name MutationName, err error) error {
	return &domain.SubmitError{Mutation: string(name), Err: err}
}
