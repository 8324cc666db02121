package cmd

import (
	"github.com/spf13/cobra"

	"github.com/travkit/travkit/editor"
	"github.com/travkit/travkit/travis"
)

func NewEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the .travis.yml document, validating on save",
		Long: `Opens the document in $EDITOR (falling back to vi) as a temporary copy.
On save the copy is validated; the destination is only replaced once it is
valid. When invalid you are offered a retry; answering no leaves the
destination untouched. Without an attached terminal an invalid edit exits
with status 1 immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			validator, err := travis.NewValidator()
			if err != nil {
				return cctx.handler.Handle(err)
			}

			loop := editor.NewLoop(validator)
			if err := loop.Run(cmd.Context(), cctx.documentPath(cmd)); err != nil {
				return cctx.handler.Handle(err)
			}

			cctx.logger.Info("document updated")
			return nil
		},
	}
}
