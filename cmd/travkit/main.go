package main

import (
	"os"

	"github.com/travkit/travkit/cli"
	"github.com/travkit/travkit/cmd"
	"github.com/travkit/travkit/version"
)

func main() {
	info := version.GetInfo()

	rootCmd := cli.NewStandardCommand(
		"travkit",
		"Manage a project's .travis.yml and its CI webhook",
	)
	rootCmd.Version = info.Version
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})

	rootCmd.AddCommand(cmd.NewGenerateCmd())
	rootCmd.AddCommand(cmd.NewCheckCmd())
	rootCmd.AddCommand(cmd.NewEditCmd())
	rootCmd.AddCommand(cmd.NewEnableCmd())
	rootCmd.AddCommand(cmd.NewDisableCmd())
	rootCmd.AddCommand(cmd.NewTriggerCmd())
	rootCmd.AddCommand(cmd.NewRunCmd())
	rootCmd.AddCommand(cmd.NewBeforeCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("travkit", cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	}))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
