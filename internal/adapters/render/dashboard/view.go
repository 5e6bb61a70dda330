package dashboard

import (
	"fmt"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderSurface(surface domain.Surface, snapshot domain.Snapshot, s styles) (string, error) {
	switch surface {
	case domain.SurfaceHome:
		return renderHome(snapshot, s), nil
	case domain.SurfaceOrderForm:
		return renderOrderForm(snapshot, s), nil
	case domain.SurfaceHistory:
		return renderHistory(snapshot, s), nil
	case domain.SurfaceChat:
		return renderChat(snapshot, s), nil
	default:
		return "", fmt.Errorf("unknown surface %q", surface)
	}
}

// formatDate prints dates the way the portal shows them to customers (D.M.YYYY).
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	year, month, day := t.Date()
	return fmt.Sprintf("%d.%d.%d", day, int(month), year)
}

func statusStyle(status domain.Status, s styles) lipgloss.Style {
	if status.Closed() {
		return s.statusDone
	}
	return s.statusOpen
}

func statusLabel(status domain.Status) string {
	if status == "" {
		return "-"
	}
	return string(status)
}
