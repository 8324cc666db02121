package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/travkit/travkit/command"
	"github.com/travkit/travkit/errors"
)

func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the resolved build script locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			script := cctx.resolver.Script()
			cctx.logger.WithField("script", script).Debug("running build script")
			if err := runShell(cmd.Context(), script); err != nil {
				return cctx.handler.Handle(err)
			}
			return nil
		},
	}
}

func NewBeforeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "before",
		Short: "Run the resolved before_script commands in order",
		Long: `Executes each before_script entry the way the CI provider would, stopping
at the first failing command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			for _, step := range cctx.resolver.BeforeScript() {
				cctx.logger.WithField("step", step).Debug("running before_script step")
				if err := runShell(cmd.Context(), step); err != nil {
					return cctx.handler.Handle(err)
				}
			}
			return nil
		},
	}
}

// runShell executes a single script entry through the shell with attached
// standard streams, mirroring how the CI provider runs it.
func runShell(ctx context.Context, script string) error {
	return runShellWith(ctx, &command.RealExecutor{}, script)
}

// runShellWith goes through the executor directly rather than the safe
// builder: build steps run as long as they need, with no deadline attached.
func runShellWith(ctx context.Context, executor command.Executor, script string) error {
	execCmd := executor.CommandContext(ctx, "sh", "-c", script)
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	if err := execCmd.Run(); err != nil {
		return errors.CommandFailed(script, err)
	}
	return nil
}
