package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/travkit/travkit/cli"
	"github.com/travkit/travkit/config"
	"github.com/travkit/travkit/git"
	"github.com/travkit/travkit/rvm"
	"github.com/travkit/travkit/travis"
)

// commandContext bundles everything a subcommand needs: configuration,
// logger, the resolver over it, and a git client rooted at the working
// directory.
type commandContext struct {
	cfg      *config.Config
	logger   *logrus.Entry
	resolver *config.Resolver
	git      *git.Client
	handler  *cli.ErrorHandler
}

func newCommandContext(cmd *cobra.Command) (*commandContext, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := cli.GetLogger(cmd, cfg)

	meta, err := cfg.ProjectMetadata()
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	opts := cli.GetOptions(cmd)
	return &commandContext{
		cfg:      cfg,
		logger:   logger,
		resolver: config.NewResolver(cfg, meta, rvm.New()),
		git:      git.New(cwd),
		handler:  cli.NewErrorHandler(opts.Verbose),
	}, nil
}

// documentPath returns the destination path of the CI document: the git
// root when inside a repository, the working directory otherwise.
func (c *commandContext) documentPath(cmd *cobra.Command) string {
	root, err := c.git.Root(cmd.Context())
	if err != nil || root == "" {
		cwd, _ := os.Getwd()
		return travis.DefaultPath(cwd)
	}
	return travis.DefaultPath(root)
}
