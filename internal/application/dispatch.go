package application

import (
	"context"
	"fmt"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/logging"
	"github.com/rs/zerolog"
)

// Policy is what the dispatcher does after a mutation succeeds.
type Policy struct {
	RefreshOnSuccess  bool
	NavigateOnSuccess domain.Surface
}

// Command carries the input of any mutation. Each handler reads only its own fields.
type Command struct {
	Order         OrderRequest
	Text          string
	TemplateIndex int
}

type mutationHandler func(ctx context.Context, cmd Command) (Outcome, error)

type route struct {
	policy  Policy
	handler mutationHandler
}

type Dispatcher struct {
	store  *Store
	routes map[MutationName]route
	logger zerolog.Logger
}

func NewDispatcher(mutations *Mutations, store *Store, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		logger: logging.ForPackage(logger, "dispatch"),
		routes: map[MutationName]route{
			MutationSubmitOrder: {
				policy: Policy{RefreshOnSuccess: true, NavigateOnSuccess: domain.SurfaceHome},
				handler: func(ctx context.Context, cmd Command) (Outcome, error) {
					return mutations.SubmitOrder(ctx, cmd.Order)
				},
			},
			MutationSendChatMessage: {
				handler: func(ctx context.Context, cmd Command) (Outcome, error) {
					return mutations.SendChatMessage(ctx, cmd.Text)
				},
			},
			MutationSendChatTemplate: {
				handler: func(ctx context.Context, cmd Command) (Outcome, error) {
					return mutations.SendChatTemplate(ctx, cmd.TemplateIndex)
				},
			},
		},
	}
}

func (d *Dispatcher) Policy(name MutationName) (Policy, bool) {
	r, ok := d.routes[name]
	return r.policy, ok
}

// Dispatch runs the named mutation and applies its policy. When the follow-up refresh fails
// the outcome is still returned, with Refreshed unset, alongside the load error.
func (d *Dispatcher) Dispatch(ctx context.Context, name MutationName, cmd Command) (Outcome, error) {
	r, ok := d.routes[name]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", domain.ErrUnknownMutation, name)
	}

	outcome, err := r.handler(ctx, cmd)
	if err != nil {
		d.logger.Warn().Err(err).Str(logging.MutationField, string(name)).Msg("mutation failed")
		return Outcome{}, err
	}
	if outcome.Skipped {
		return outcome, nil
	}

	if r.policy.RefreshOnSuccess {
		if _, err := d.store.Load(ctx, outcome.ClientID); err != nil {
			return outcome, fmt.Errorf("refresh after %s: %w", name, err)
		}
		outcome.Refreshed = true
	}
	outcome.Navigate = r.policy.NavigateOnSuccess

	return outcome, nil
}
