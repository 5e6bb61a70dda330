package ports

import (
	"context"

	"github.com/bnema/container-portal-cli/internal/domain"
)

// IdentityStore persists the last client id that loaded successfully.
// Get returns domain.ErrIdentityNotFound when nothing is stored.
type IdentityStore interface {
	Get(ctx context.Context) (domain.ClientID, error)
	Set(ctx context.Context, id domain.ClientID) error
	Clear(ctx context.Context) error
}
