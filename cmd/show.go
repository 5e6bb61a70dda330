package cmd

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

type snapshotOutput struct {
	ClientID      string        `json:"clientId"`
	ClientName    string        `json:"clientName"`
	ActiveOrders  []orderOutput `json:"activeOrders"`
	Orders        []orderOutput `json:"orders"`
	Addresses     []string      `json:"addresses"`
	ChatTemplates []string      `json:"chatTemplates"`
	LoadedAt      time.Time     `json:"loadedAt"`
}

type orderOutput struct {
	OrderID          string     `json:"orderId"`
	Type             string     `json:"type"`
	Address          string     `json:"address"`
	Status           string     `json:"status"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	EstimatedArrival *time.Time `json:"estimatedArrival,omitempty"`
}

func newShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "show [home|order|history|chat]...",
		Short:     "Show dashboard screens",
		Long:      "Show one or more dashboard screens for the signed-in customer. Defaults to home.",
		ValidArgs: surfaceNames(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			surfaces := make([]domain.Surface, 0, len(args))
			for _, arg := range args {
				surface, err := domain.ParseSurface(arg)
				if err != nil {
					return err
				}
				surfaces = append(surfaces, surface)
			}
			if len(surfaces) == 0 {
				surfaces = []domain.Surface{domain.SurfaceHome}
			}

			p, err := app.newPortal(cmd, portalOptions{spinner: !asJSON})
			if err != nil {
				return err
			}

			snapshot, err := startSession(cmd, app, p)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toSnapshotOutput(snapshot))
			}

			return p.board.Flush(cmd.OutOrStdout(), surfaces...)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the loaded client data as JSON")

	return cmd
}

func surfaceNames() []string {
	names := make([]string, 0, len(domain.AllSurfaces))
	for _, surface := range domain.AllSurfaces {
		names = append(names, string(surface))
	}
	return names
}

func toSnapshotOutput(snapshot domain.Snapshot) snapshotOutput {
	return snapshotOutput{
		ClientID:      string(snapshot.ClientID),
		ClientName:    snapshot.DisplayName(),
		ActiveOrders:  toOrderOutputs(snapshot.ActiveOrders()),
		Orders:        toOrderOutputs(snapshot.Orders),
		Addresses:     snapshot.Addresses(),
		ChatTemplates: append([]string{}, snapshot.ChatTemplates...),
		LoadedAt:      snapshot.LoadedAt,
	}
}

func toOrderOutputs(orders []domain.Order) []orderOutput {
	out := make([]orderOutput, 0, len(orders))
	for _, order := range orders {
		entry := orderOutput{
			OrderID:          string(order.ID),
			Type:             order.Type,
			Address:          order.Address,
			Status:           strings.TrimSpace(string(order.Status)),
			EstimatedArrival: order.EstimatedArrival,
		}
		if !order.CreatedAt.IsZero() {
			created := order.CreatedAt
			entry.CreatedAt = &created
		}
		out = append(out, entry)
	}
	return out
}
