package ports

import (
	"context"
	"encoding/json"

	"github.com/bnema/container-portal-cli/internal/domain"
)

// Gateway sends one action to the portal API. The returned payload is always a JSON object.
// Failures are *domain.NetworkError or *domain.APIError.
type Gateway interface {
	Request(ctx context.Context, action domain.Action, params map[string]string) (json.RawMessage, error)
}
