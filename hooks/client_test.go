package hooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travkit/travkit/errors"
	"github.com/travkit/travkit/git"
)

// hookServer is a fake provider hook API on top of httptest, tracking write
// requests so idempotence can be asserted.
type hookServer struct {
	*httptest.Server

	hooks       []Hook
	nextID      int64
	creates     int
	patches     int
	testPosts   int
	lastAuth    string
	failWithMsg string // when set, every request fails 500 with this message
}

func newHookServer(t *testing.T, initial ...Hook) *hookServer {
	t.Helper()
	s := &hookServer{hooks: initial, nextID: 100}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *hookServer) handle(w http.ResponseWriter, r *http.Request) {
	s.lastAuth = r.Header.Get("Authorization")

	if s.failWithMsg != "" {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": s.failWithMsg})
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/hooks"):
		json.NewEncoder(w).Encode(s.hooks)

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/hooks"):
		var hook Hook
		json.NewDecoder(r.Body).Decode(&hook)
		hook.ID = s.nextID
		s.nextID++
		s.creates++
		s.hooks = append(s.hooks, hook)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(hook)

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/test"):
		s.testPosts++
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPatch:
		var patch Hook
		json.NewDecoder(r.Body).Decode(&patch)
		s.patches++
		for i := range s.hooks {
			if s.hooks[i].ID == patch.ID {
				s.hooks[i] = patch
				json.NewEncoder(w).Encode(patch)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func testIdentity() git.Identity {
	return git.Identity{User: "alice", Owner: "alice", Repo: "widget", Token: "sekrit"}
}

func TestFind_NoHook(t *testing.T) {
	s := newHookServer(t)
	c := NewClient(s.URL, testIdentity())

	hook, err := c.Find(context.Background())
	require.NoError(t, err)
	assert.Nil(t, hook)
}

func TestFind_MatchesByName(t *testing.T) {
	s := newHookServer(t,
		Hook{ID: 1, Name: "irc", Active: true},
		Hook{ID: 2, Name: HookName, Active: false},
	)
	c := NewClient(s.URL, testIdentity())

	hook, err := c.Find(context.Background())
	require.NoError(t, err)
	require.NotNil(t, hook)
	assert.Equal(t, int64(2), hook.ID)
}

func TestEnsureEnabled_CreatesWhenAbsent(t *testing.T) {
	s := newHookServer(t)
	c := NewClient(s.URL, testIdentity())

	hook, err := c.EnsureEnabled(context.Background())
	require.NoError(t, err)
	assert.True(t, hook.Active)
	assert.Equal(t, HookName, hook.Name)
	assert.Equal(t, "alice", hook.Config["user"])
	assert.Equal(t, "sekrit", hook.Config["token"])
	assert.Equal(t, 1, s.creates)
}

func TestEnsureEnabled_Idempotent(t *testing.T) {
	s := newHookServer(t)
	c := NewClient(s.URL, testIdentity())

	_, err := c.EnsureEnabled(context.Background())
	require.NoError(t, err)
	_, err = c.EnsureEnabled(context.Background())
	require.NoError(t, err)

	// At most one creation request; the second call sees the active hook.
	assert.Equal(t, 1, s.creates)
	assert.Equal(t, 0, s.patches)
}

func TestEnsureEnabled_PatchesInactivePreservingConfig(t *testing.T) {
	s := newHookServer(t, Hook{
		ID:     7,
		Name:   HookName,
		Active: false,
		Config: map[string]interface{}{"user": "bob", "token": "old"},
	})
	c := NewClient(s.URL, testIdentity())

	hook, err := c.EnsureEnabled(context.Background())
	require.NoError(t, err)
	assert.True(t, hook.Active)
	assert.Equal(t, int64(7), hook.ID)
	assert.Equal(t, "bob", hook.Config["user"])
	assert.Equal(t, 0, s.creates)
	assert.Equal(t, 1, s.patches)
}

func TestEnsureDisabled_NoHookNoWrites(t *testing.T) {
	s := newHookServer(t)
	c := NewClient(s.URL, testIdentity())

	require.NoError(t, c.EnsureDisabled(context.Background()))
	assert.Equal(t, 0, s.creates)
	assert.Equal(t, 0, s.patches)
}

func TestEnsureDisabled_InactiveHookNoWrites(t *testing.T) {
	s := newHookServer(t, Hook{ID: 3, Name: HookName, Active: false})
	c := NewClient(s.URL, testIdentity())

	require.NoError(t, c.EnsureDisabled(context.Background()))
	assert.Equal(t, 0, s.patches)
}

func TestEnsureDisabled_PatchesActiveHook(t *testing.T) {
	s := newHookServer(t, Hook{ID: 3, Name: HookName, Active: true})
	c := NewClient(s.URL, testIdentity())

	require.NoError(t, c.EnsureDisabled(context.Background()))
	assert.Equal(t, 1, s.patches)
	assert.False(t, s.hooks[0].Active)
}

func TestTrigger_CreatesThenTests(t *testing.T) {
	s := newHookServer(t)
	c := NewClient(s.URL, testIdentity())

	require.NoError(t, c.Trigger(context.Background()))
	assert.Equal(t, 1, s.creates)
	assert.Equal(t, 1, s.testPosts)
}

func TestTrigger_ExistingHook(t *testing.T) {
	s := newHookServer(t, Hook{ID: 9, Name: HookName, Active: true})
	c := NewClient(s.URL, testIdentity())

	require.NoError(t, c.Trigger(context.Background()))
	assert.Equal(t, 0, s.creates)
	assert.Equal(t, 1, s.testPosts)
}

func TestDo_BasicAuth(t *testing.T) {
	s := newHookServer(t)
	c := NewClient(s.URL, testIdentity())

	_, err := c.List(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.lastAuth, "Basic "))
}

func TestDo_ErrorCarriesStatusAndMessage(t *testing.T) {
	s := newHookServer(t)
	s.failWithMsg = "rate limited"
	c := NewClient(s.URL, testIdentity())

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeHookAPI))
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "rate limited")
}
