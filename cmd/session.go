package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/container-portal-cli/internal/application"
	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login [client-id]",
		Short: "Sign in with a client id and show the home screen",
		Long:  "Sign in with a client id. Without an argument the id comes from --client-id, PORTAL_CLIENT_ID, the stored session, or a prompt.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.newPortal(cmd, portalOptions{spinner: true})
			if err != nil {
				return err
			}

			snapshot, err := p.session.Start(cmd.Context(), app.requestedClientID(args...))
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n\n", snapshot.DisplayName(), snapshot.ClientID); err != nil {
				return err
			}
			return p.board.Flush(cmd.OutOrStdout(), domain.SurfaceHome)
		},
	}
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored client id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.newPortal(cmd, portalOptions{})
			if err != nil {
				return err
			}

			if err := p.session.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

// startSession signs in the way login does, for commands that need a loaded snapshot.
func startSession(cmd *cobra.Command, app *app, p *portal) (domain.Snapshot, error) {
	return p.session.Start(cmd.Context(), app.requestedClientID())
}

// applyOutcome hands a dispatched outcome to the dashboard and prints the given surfaces.
// A refresh failure after a successful mutation is still reported after the notice.
func applyOutcome(cmd *cobra.Command, p *portal, outcome application.Outcome, dispatchErr error, surfaces ...domain.Surface) error {
	if dispatchErr != nil && outcome.Mutation == "" {
		return dispatchErr
	}

	if err := p.dashboard.Apply(outcome); err != nil {
		return errors.Join(dispatchErr, err)
	}
	if outcome.Skipped {
		return dispatchErr
	}

	if err := p.board.Flush(cmd.OutOrStdout(), surfaces...); err != nil {
		return errors.Join(dispatchErr, err)
	}

	return dispatchErr
}
