package cmd

import (
	"github.com/spf13/cobra"

	"github.com/travkit/travkit/hooks"
)

func NewEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Ensure the CI webhook exists and is active",
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			client, err := cctx.hookClient(cmd)
			if err != nil {
				return cctx.handler.Handle(err)
			}

			hook, err := client.EnsureEnabled(cmd.Context())
			if err != nil {
				return cctx.handler.Handle(err)
			}
			cctx.logger.WithField("id", hook.ID).Info("hook is active")
			return nil
		},
	}
}

func NewDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Deactivate the CI webhook if present",
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			client, err := cctx.hookClient(cmd)
			if err != nil {
				return cctx.handler.Handle(err)
			}

			if err := client.EnsureDisabled(cmd.Context()); err != nil {
				return cctx.handler.Handle(err)
			}
			cctx.logger.Info("hook is inactive")
			return nil
		},
	}
}

func NewTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Request a test delivery of the CI webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			client, err := cctx.hookClient(cmd)
			if err != nil {
				return cctx.handler.Handle(err)
			}

			if err := client.Trigger(cmd.Context()); err != nil {
				return cctx.handler.Handle(err)
			}
			cctx.logger.Info("hook triggered")
			return nil
		},
	}
}

// hookClient resolves the repository identity and builds the webhook
// client. Identity failures are fatal preconditions, surfaced before any
// request is made.
func (c *commandContext) hookClient(cmd *cobra.Command) (*hooks.Client, error) {
	identity, err := c.git.ResolveIdentity(cmd.Context(), c.cfg.Travis.Token)
	if err != nil {
		return nil, err
	}
	return hooks.NewClient(c.resolver.APIURL(), *identity), nil
}
