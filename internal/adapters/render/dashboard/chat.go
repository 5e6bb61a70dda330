package dashboard

import (
	"fmt"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderChat(snapshot domain.Snapshot, s styles) string {
	templates := domain.ResolveChatTemplates(snapshot.ChatTemplates)

	options := make([]string, 0, len(templates)+1)
	options = append(options, "Quick messages:")
	for i, template := range templates {
		options = append(options, s.option.Render(fmt.Sprintf("  %d. %s", i+1, template)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Chat with the office"),
		s.section.Render(lipgloss.JoinVertical(lipgloss.Left, options...)),
		s.section.Render(s.hint.Render("portal chat template <n>")),
		s.hint.Render("portal chat send <message>"),
	)
}
