// Package hooks is a minimal authenticated REST client for the repository's
// webhook collection. All operations require a resolved repository identity
// and implement idempotent enable/disable semantics: state that is already
// correct results in no write requests.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/travkit/travkit/errors"
	"github.com/travkit/travkit/git"
	"github.com/travkit/travkit/logging"
)

// HookName identifies the CI integration within a repository's hook
// collection.
const HookName = "travis"

// Hook is the remote webhook resource.
type Hook struct {
	ID     int64                  `json:"id"`
	Name   string                 `json:"name"`
	Active bool                   `json:"active"`
	Config map[string]interface{} `json:"config,omitempty"`
}

// Client performs authenticated calls against a repository's hook
// collection. Requests use basic auth with the identity's user and token
// over HTTPS; TLS verification follows the system trust store via the
// default transport.
type Client struct {
	baseURL  string
	identity git.Identity
	http     *http.Client
	log      *logrus.Entry
}

// NewClient creates a hook client for the given repository identity.
func NewClient(baseURL string, identity git.Identity) *Client {
	return &Client{
		baseURL:  baseURL,
		identity: identity,
		http:     http.DefaultClient,
		log:      logging.NewLogger("hooks"),
	}
}

// List fetches the repository's full hook collection.
func (c *Client) List(ctx context.Context) ([]Hook, error) {
	var hooks []Hook
	if err := c.do(ctx, http.MethodGet, c.collectionPath(), nil, &hooks); err != nil {
		return nil, err
	}
	return hooks, nil
}

// Find returns the CI hook, or nil when the repository has none.
func (c *Client) Find(ctx context.Context) (*Hook, error) {
	hooks, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range hooks {
		if hooks[i].Name == HookName {
			return &hooks[i], nil
		}
	}
	return nil, nil
}

// EnsureEnabled makes sure the CI hook exists and is active, creating it
// when absent and patching it when inactive. Returns the hook in its final
// state. Calling it again immediately performs no further writes.
func (c *Client) EnsureEnabled(ctx context.Context) (*Hook, error) {
	hook, err := c.Find(ctx)
	if err != nil {
		return nil, err
	}

	if hook == nil {
		create := Hook{
			Name:   HookName,
			Active: true,
			Config: map[string]interface{}{
				"user":  c.identity.User,
				"token": c.identity.Token,
			},
		}
		var created Hook
		if err := c.do(ctx, http.MethodPost, c.collectionPath(), create, &created); err != nil {
			return nil, err
		}
		c.log.WithField("id", created.ID).Info("created hook")
		return &created, nil
	}

	if !hook.Active {
		patch := Hook{
			ID:     hook.ID,
			Name:   hook.Name,
			Active: true,
			Config: hook.Config,
		}
		var updated Hook
		if err := c.do(ctx, http.MethodPatch, c.hookPath(hook.ID), patch, &updated); err != nil {
			return nil, err
		}
		c.log.WithField("id", hook.ID).Info("enabled hook")
		return &updated, nil
	}

	c.log.WithField("id", hook.ID).Debug("hook already active")
	return hook, nil
}

// EnsureDisabled deactivates the CI hook when it exists and is active.
// A repository with no hook, or an already-inactive hook, causes no write
// requests.
func (c *Client) EnsureDisabled(ctx context.Context) error {
	hook, err := c.Find(ctx)
	if err != nil {
		return err
	}
	if hook == nil || !hook.Active {
		c.log.Debug("hook absent or already inactive")
		return nil
	}

	patch := Hook{
		ID:     hook.ID,
		Name:   hook.Name,
		Active: false,
		Config: hook.Config,
	}
	if err := c.do(ctx, http.MethodPatch, c.hookPath(hook.ID), patch, nil); err != nil {
		return err
	}
	c.log.WithField("id", hook.ID).Info("disabled hook")
	return nil
}

// Trigger ensures the CI hook exists, then POSTs to its test sub-resource
// with an empty body to request a build.
func (c *Client) Trigger(ctx context.Context) error {
	hook, err := c.EnsureEnabled(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/test", c.hookPath(hook.ID))
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return err
	}
	c.log.WithField("id", hook.ID).Info("triggered hook test")
	return nil
}

func (c *Client) collectionPath() string {
	return fmt.Sprintf("/repos/%s/hooks", c.identity.Slug())
}

func (c *Client) hookPath(id int64) string {
	return fmt.Sprintf("%s/%d", c.collectionPath(), id)
}

// do performs a single request. A non-2xx response becomes an error carrying
// the HTTP status and, when the body is parseable JSON, the provider's
// message field.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to build request")
	}
	req.SetBasicAuth(c.identity.User, c.identity.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("hook API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeHookAPI, "hook API request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeHookAPI, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.HookAPI(resp.StatusCode, providerMessage(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrap(err, errors.ErrCodeHookAPI, "failed to decode response body")
		}
	}
	return nil
}

// providerMessage extracts the provider-supplied message from an error
// response body, or returns empty when the body is not parseable JSON.
func providerMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
