package travis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travkit/travkit/config"
)

func resolvedFixture() config.Resolved {
	return config.Resolved{
		BeforeScript: []string{"gem install hoe-travis --no-document"},
		Script:       "rake travis",
		Language:     "ruby",
		Versions:     []string{"1.9.3", "2.0.0"},
		Notifications: map[string]interface{}{
			"email": []string{"a@x", "b@x"},
		},
	}
}

func TestFromResolved_DropsFalsyKeys(t *testing.T) {
	r := resolvedFixture()
	r.AfterScript = []string{} // must be absent, not emitted as after_script: []

	doc := FromResolved(r)
	fields := doc.Fields()

	assert.NotContains(t, fields, "after_script")
	assert.Contains(t, fields, "before_script")
	assert.Contains(t, fields, "language")
	assert.Contains(t, fields, "notifications")
	assert.Contains(t, fields, "rvm")
	assert.Contains(t, fields, "script")
}

func TestFromResolved_EmptyNotificationsDropped(t *testing.T) {
	r := resolvedFixture()
	r.Notifications = map[string]interface{}{"email": []string{}}

	doc := FromResolved(r)
	assert.NotContains(t, doc.Fields(), "notifications")
}

func TestMarshal_NoFalsyKeyInOutput(t *testing.T) {
	r := resolvedFixture()
	r.AfterScript = nil
	r.Script = ""

	doc := FromResolved(r)
	assert.NotContains(t, doc.Fields(), "after_script")
	assert.NotContains(t, doc.Fields(), "script")

	data, err := doc.Marshal()
	require.NoError(t, err)

	// Check per line: a bare substring match would trip over the
	// "script" inside the legitimately emitted before_script key.
	for _, line := range strings.Split(string(data), "\n") {
		assert.False(t, strings.HasPrefix(line, "after_script:"), "unexpected line %q", line)
		assert.False(t, strings.HasPrefix(line, "script:"), "unexpected line %q", line)
	}
	assert.Contains(t, string(data), "language: ruby")
}

func TestMarshal_AlphabeticalKeyOrder(t *testing.T) {
	data, err := FromResolved(resolvedFixture()).Marshal()
	require.NoError(t, err)

	var keys []string
	for _, line := range strings.Split(string(data), "\n") {
		if len(line) > 0 && line[0] != ' ' && line[0] != '-' && strings.Contains(line, ":") {
			keys = append(keys, strings.SplitN(line, ":", 2)[0])
		}
	}

	assert.Equal(t, []string{"before_script", "language", "notifications", "rvm", "script"}, keys)
}

func TestMarshal_Deterministic(t *testing.T) {
	doc := FromResolved(resolvedFixture())

	first, err := doc.Marshal()
	require.NoError(t, err)
	second, err := doc.Marshal()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := DefaultPath(dir)

	require.NoError(t, FromResolved(resolvedFixture()).WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "script: rake travis")
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/repo", ".travis.yml"), DefaultPath("/repo"))
}
