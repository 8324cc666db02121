package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/travkit/travkit/travis"
)

func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the .travis.yml document from resolved configuration",
		Long: `Resolves configuration from built-in defaults, the .travkit.yml file, and
detected interpreter versions, then writes the .travis.yml document at the
repository root. Keys with empty values are omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			resolved := cctx.resolver.Resolve(cmd.Context())
			doc := travis.FromResolved(resolved)

			if stdout, _ := cmd.Flags().GetBool("stdout"); stdout {
				data, err := doc.Marshal()
				if err != nil {
					return cctx.handler.Handle(err)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}

			dest := cctx.documentPath(cmd)
			if err := doc.WriteFile(dest); err != nil {
				return cctx.handler.Handle(err)
			}
			cctx.logger.WithField("path", dest).Info("generated CI document")
			return nil
		},
	}
	cmd.Flags().Bool("stdout", false, "Print the document instead of writing it")
	return cmd
}
