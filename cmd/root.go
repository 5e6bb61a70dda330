package cmd

import (
	"context"

	"github.com/bnema/container-portal-cli/internal/logging"
	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "portal",
		Short:         "Container portal client: orders, history and chat for waste-container customers",
		Long:          "portal signs a customer in by client id, shows their active orders, order history and chat templates, and sends new orders and chat messages to the container company's portal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&app.flags.clientID, "client-id", "", "client id to sign in with (overrides the stored one and PORTAL_CLIENT_ID)")
	rootCmd.PersistentFlags().StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn, error, disabled")
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		_, err := logging.ParseLevel(app.logLevel())
		return err
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newShowCmd(app),
		newOrderCmd(app),
		newChatCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
