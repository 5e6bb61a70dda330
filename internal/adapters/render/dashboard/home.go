package dashboard

import (
	"fmt"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderHome(snapshot domain.Snapshot, s styles) string {
	active := snapshot.ActiveOrders()

	lines := []string{
		s.title.Render(fmt.Sprintf("Hello, %s", snapshot.DisplayName())),
		s.header.Render(fmt.Sprintf("client: %s · active orders: %d", snapshot.ClientID, len(active))),
	}
	if !snapshot.LoadedAt.IsZero() {
		lines = append(lines, s.header.Render("updated "+snapshot.LoadedAt.Format("15:04")))
	}

	if len(active) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No active orders.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	cards := make([]string, 0, len(active))
	for _, order := range active {
		cards = append(cards, renderOrderCard(order, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, cards...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderOrderCard(order domain.Order, s styles) string {
	parts := []string{s.cardTitle.Render(fmt.Sprintf("Order #%s", order.ID))}
	if order.Type != "" {
		parts = append(parts, s.detail.Render(order.Type))
	}
	if order.Address != "" {
		parts = append(parts, s.detail.Render(order.Address))
	}
	parts = append(parts, statusStyle(order.Status, s).Render(statusLabel(order.Status)))
	if order.EstimatedArrival != nil {
		parts = append(parts, s.header.Render("ETA "+formatDate(*order.EstimatedArrival)))
	}

	return s.card.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
