// Package git interrogates the local git repository and configuration for
// the pieces of repository identity the webhook client requires.
package git

import (
	"context"
	"regexp"
	"strings"

	"github.com/travkit/travkit/command"
)

var (
	sshRemoteRegex   = regexp.MustCompile(`^git@github\.com:([^/]+)/(.+?)(?:\.git)?$`)
	httpsRemoteRegex = regexp.MustCompile(`^https?://github\.com/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// Client runs git commands in a fixed working directory.
type Client struct {
	builder *command.SafeBuilder
	dir     string
}

// New creates a Client for the given directory using the real executor.
func New(dir string) *Client {
	return NewWithExecutor(dir, &command.RealExecutor{})
}

// NewWithExecutor creates a Client with a custom executor for tests.
func NewWithExecutor(dir string, exec command.Executor) *Client {
	return &Client{
		builder: command.NewSafeBuilderWithExecutor(exec),
		dir:     dir,
	}
}

// ConfigValue returns the value of a git configuration key, or the empty
// string when the key is unset.
func (c *Client) ConfigValue(ctx context.Context, key string) (string, error) {
	if err := c.builder.Validate("configKey", key); err != nil {
		return "", err
	}

	cmd, err := c.builder.Build(ctx, "git", "config", "--get", key)
	if err != nil {
		return "", err
	}
	execCmd := cmd.Exec()
	execCmd.Dir = c.dir
	output, err := execCmd.Output()
	if err != nil {
		// git exits non-zero for unset keys; treat that as absent.
		return "", nil
	}
	return strings.TrimSpace(string(output)), nil
}

// RemoteURL returns the origin remote URL, or the empty string when no
// origin remote is configured.
func (c *Client) RemoteURL(ctx context.Context) (string, error) {
	return c.ConfigValue(ctx, "remote.origin.url")
}

// Root returns the top-level directory of the repository.
func (c *Client) Root(ctx context.Context) (string, error) {
	cmd, err := c.builder.Build(ctx, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	execCmd := cmd.Exec()
	execCmd.Dir = c.dir
	output, err := execCmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// ParseRemote extracts the owner and repository name from a GitHub remote
// URL in SSH (git@github.com:owner/repo.git) or HTTPS form. Returns false
// when the URL does not match either shape.
func ParseRemote(url string) (owner, repo string, ok bool) {
	url = strings.TrimSpace(url)
	for _, re := range []*regexp.Regexp{sshRemoteRegex, httpsRemoteRegex} {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], m[2], true
		}
	}
	return "", "", false
}
