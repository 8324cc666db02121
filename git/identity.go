package git

import (
	"context"
	"fmt"

	"github.com/travkit/travkit/config"
	"github.com/travkit/travkit/errors"
)

// Identity is everything the webhook client needs to address a repository:
// the authenticating GitHub user, the owner/name pair from the origin
// remote, and the access token.
type Identity struct {
	User  string
	Owner string
	Repo  string
	Token string
}

// Slug returns the owner/repo pair used in hook API paths.
func (i Identity) Slug() string {
	return fmt.Sprintf("%s/%s", i.Owner, i.Repo)
}

// ResolveIdentity assembles the repository identity from git configuration,
// preferring the config-file token over git's github.token when set. Every
// missing piece is a fatal precondition failure with a remediation message;
// nothing here is retryable.
func (c *Client) ResolveIdentity(ctx context.Context, cfgToken string) (*Identity, error) {
	user, err := c.ConfigValue(ctx, "github.user")
	if err != nil {
		return nil, err
	}
	if user == "" {
		return nil, errors.IdentityMissing(
			"github.user is not set; run 'git config github.user <username>'")
	}

	remote, err := c.RemoteURL(ctx)
	if err != nil {
		return nil, err
	}
	if remote == "" {
		return nil, errors.IdentityMissing(
			"no origin remote configured; add a GitHub remote first")
	}

	owner, repo, ok := ParseRemote(remote)
	if !ok {
		return nil, errors.IdentityMissing(
			fmt.Sprintf("origin remote %q is not a GitHub URL", remote)).
			WithDetail("remote", remote)
	}

	token := cfgToken
	if !config.TokenIsSet(token) {
		token, err = c.ConfigValue(ctx, "github.token")
		if err != nil {
			return nil, err
		}
	}
	if !config.TokenIsSet(token) {
		return nil, errors.TokenUnset()
	}

	return &Identity{
		User:  user,
		Owner: owner,
		Repo:  repo,
		Token: token,
	}, nil
}
