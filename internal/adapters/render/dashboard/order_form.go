package dashboard

import (
	"fmt"
	"strings"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AddressOptions lists the customer's known addresses in Hebrew collation order, as the
// order form offers them.
func AddressOptions(snapshot domain.Snapshot) []string {
	addresses := snapshot.Addresses()
	collate.New(language.Hebrew).SortStrings(addresses)
	return addresses
}

func renderOrderForm(snapshot domain.Snapshot, s styles) string {
	lines := []string{
		s.title.Render("New order"),
		s.header.Render("types: " + strings.Join(domain.OrderTypes, " · ")),
	}

	options := []string{s.hint.Render("  0) " + domain.AddressPlaceholder)}
	for i, address := range AddressOptions(snapshot) {
		options = append(options, s.option.Render(fmt.Sprintf("  %d) %s", i+1, address)))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{"Address:"}, options...)...)))

	lines = append(lines,
		s.section.Render(s.hint.Render("portal order --type <type> --select <n> [--notes <text>]")),
		s.hint.Render("portal order --type <type> --address <new address> [--notes <text>]"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
