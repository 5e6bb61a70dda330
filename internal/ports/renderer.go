package ports

import "github.com/bnema/container-portal-cli/internal/domain"

type Renderer interface {
	Render(surface domain.Surface, snapshot domain.Snapshot) (string, error)
}

// Display is the target surfaces are rendered into. Replace always swaps the whole
// surface content.
type Display interface {
	Replace(surface domain.Surface, content string) error
	Focus(surface domain.Surface) error
	Notify(message string) error
}
