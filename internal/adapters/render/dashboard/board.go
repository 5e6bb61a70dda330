package dashboard

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/ports"
)

// Board is the terminal display. Every surface holds its last rendered content; Flush
// writes surfaces and pending notices to a writer.
type Board struct {
	mu       sync.Mutex
	surfaces map[domain.Surface]string
	focus    domain.Surface
	notices  []string
	styles   styles
}

var _ ports.Display = (*Board)(nil)

func NewBoard() *Board {
	return &Board{
		surfaces: make(map[domain.Surface]string, len(domain.AllSurfaces)),
		focus:    domain.SurfaceHome,
		styles:   newStyles(),
	}
}

func (b *Board) Replace(surface domain.Surface, content string) error {
	if _, err := domain.ParseSurface(string(surface)); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.surfaces[surface] = content

	return nil
}

func (b *Board) Focus(surface domain.Surface) error {
	if _, err := domain.ParseSurface(string(surface)); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.focus = surface

	return nil
}

func (b *Board) Notify(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, message)

	return nil
}

func (b *Board) Content(surface domain.Surface) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	content, ok := b.surfaces[surface]
	return content, ok
}

func (b *Board) Focused() domain.Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.focus
}

// Flush writes pending notices, then the given surfaces (the focused one when none are
// given). Notices are dropped once written.
func (b *Board) Flush(w io.Writer, surfaces ...domain.Surface) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(surfaces) == 0 {
		surfaces = []domain.Surface{b.focus}
	}

	blocks := make([]string, 0, len(surfaces)+len(b.notices))
	for _, notice := range b.notices {
		blocks = append(blocks, b.styles.notice.Render(notice))
	}
	for _, surface := range surfaces {
		content, ok := b.surfaces[surface]
		if !ok {
			return fmt.Errorf("surface %s has not been rendered", surface)
		}
		blocks = append(blocks, content)
	}

	if _, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n")); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	b.notices = nil

	return nil
}
