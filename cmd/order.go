package cmd

import (
	"fmt"

	"github.com/bnema/container-portal-cli/internal/adapters/render/dashboard"
	"github.com/bnema/container-portal-cli/internal/application"
	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newOrderCmd(app *app) *cobra.Command {
	var (
		orderType string
		address   string
		selection int
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Submit a new order",
		Long:  "Submit a new order for a placement, swap or pickup. Type a new address with --address or pick one of your addresses by its number in 'portal show order' with --select.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.newPortal(cmd, portalOptions{spinner: true})
			if err != nil {
				return err
			}

			snapshot, err := startSession(cmd, app, p)
			if err != nil {
				return err
			}

			request := application.OrderRequest{
				Type:         orderType,
				TypedAddress: address,
				Notes:        notes,
			}
			if cmd.Flags().Changed("select") {
				selected, err := selectAddress(snapshot, selection)
				if err != nil {
					return err
				}
				request.SelectedAddress = selected
			}

			outcome, err := p.dispatcher.Dispatch(cmd.Context(), application.MutationSubmitOrder, application.Command{Order: request})
			return applyOutcome(cmd, p, outcome, err)
		},
	}

	cmd.Flags().StringVar(&orderType, "type", "", fmt.Sprintf("order type (%s, %s or %s)", domain.OrderTypePlacement, domain.OrderTypeSwap, domain.OrderTypePickup))
	cmd.Flags().StringVar(&address, "address", "", "new address for the order")
	cmd.Flags().IntVar(&selection, "select", 0, "number of one of your addresses as listed by 'portal show order'")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the office")

	return cmd
}

// selectAddress maps a selector number to an address. Zero is the empty placeholder choice.
func selectAddress(snapshot domain.Snapshot, selection int) (string, error) {
	options := dashboard.AddressOptions(snapshot)
	switch {
	case selection == 0:
		return domain.AddressPlaceholder, nil
	case selection < 0 || selection > len(options):
		return "", fmt.Errorf("address %d is not in your list (1-%d)", selection, len(options))
	default:
		return options[selection-1], nil
	}
}
