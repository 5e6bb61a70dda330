package ports

import (
	"context"

	"github.com/bnema/container-portal-cli/internal/domain"
)

type Prompter interface {
	// PromptClientID shows notice (may be empty) and asks for a client id.
	// ok is false when the user declines to answer.
	PromptClientID(ctx context.Context, notice string) (id domain.ClientID, ok bool, err error)
}
