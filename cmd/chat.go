package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/container-portal-cli/internal/application"
	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Message the office",
	}

	cmd.AddCommand(
		newChatSendCmd(app),
		newChatTemplateCmd(app),
		newChatTemplatesCmd(app),
	)

	return cmd
}

func newChatSendCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send a free-text message",
		Long:  "Send a free-text message to the office. A blank message is not sent.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.newPortal(cmd, portalOptions{spinner: true})
			if err != nil {
				return err
			}
			if _, err := startSession(cmd, app, p); err != nil {
				return err
			}

			outcome, err := p.dispatcher.Dispatch(cmd.Context(), application.MutationSendChatMessage, application.Command{
				Text: strings.Join(args, " "),
			})
			return applyOutcome(cmd, p, outcome, err, domain.SurfaceChat)
		},
	}
}

func newChatTemplateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template <n>",
		Short: "Send one of the quick messages by its number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid template number %q", args[0])
			}

			p, err := app.newPortal(cmd, portalOptions{spinner: true})
			if err != nil {
				return err
			}
			if _, err := startSession(cmd, app, p); err != nil {
				return err
			}

			outcome, err := p.dispatcher.Dispatch(cmd.Context(), application.MutationSendChatTemplate, application.Command{TemplateIndex: index})
			return applyOutcome(cmd, p, outcome, err, domain.SurfaceChat)
		},
	}
}

func newChatTemplatesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the quick messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.newPortal(cmd, portalOptions{spinner: true})
			if err != nil {
				return err
			}
			if _, err := startSession(cmd, app, p); err != nil {
				return err
			}

			return p.board.Flush(cmd.OutOrStdout(), domain.SurfaceChat)
		},
	}
}
