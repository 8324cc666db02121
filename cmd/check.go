package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/travkit/travkit/errors"
	"github.com/travkit/travkit/travis"
)

func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate the .travis.yml document against the provider schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			path := cctx.documentPath(cmd)
			if len(args) > 0 {
				path = args[0]
			}

			validator, err := travis.NewValidator()
			if err != nil {
				return cctx.handler.Handle(err)
			}

			issues := validator.CheckFile(path)
			for _, issue := range issues {
				fmt.Fprintln(cmd.ErrOrStderr(), issue)
			}
			if len(issues) > 0 {
				return cctx.handler.Handle(errors.DocInvalid(path, len(issues)))
			}

			cctx.logger.WithField("path", path).Info("document is valid")
			return nil
		},
	}
}
