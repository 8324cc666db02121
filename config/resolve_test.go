package config

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubDetector struct {
	versions []string
	err      error
}

func (s *stubDetector) Detect(ctx context.Context) ([]string, error) {
	return s.versions, s.err
}

func TestVersions_DefaultsWhenNothingConfigured(t *testing.T) {
	r := NewResolver(nil, Metadata{}, nil)

	versions := r.Versions(context.Background())
	assert.Equal(t, []string{"1.8.7", "1.9.2", "1.9.3"}, versions)
}

func TestVersions_DetectedStripsSuffixAndSorts(t *testing.T) {
	detector := &stubDetector{versions: []string{"1.8.0-p1", "1.6.8"}}
	r := NewResolver(nil, Metadata{}, detector)

	versions := r.Versions(context.Background())
	assert.Equal(t, []string{"1.6.8", "1.8.0"}, versions)
}

func TestVersions_DetectedDeduplicates(t *testing.T) {
	detector := &stubDetector{versions: []string{"2.1.0-x86_64", "2.1.0-p76", "2.0.0"}}
	r := NewResolver(nil, Metadata{}, detector)

	versions := r.Versions(context.Background())
	assert.Equal(t, []string{"2.0.0", "2.1.0"}, versions)
}

func TestVersions_ConfiguredWinsWhenDetectionEmpty(t *testing.T) {
	cfg := &Config{Travis: TravisConfig{Versions: []string{"2.1.0", "2.0.0"}}}
	r := NewResolver(cfg, Metadata{}, &stubDetector{})

	versions := r.Versions(context.Background())
	assert.Equal(t, []string{"2.0.0", "2.1.0"}, versions)
}

func TestVersions_DetectorErrorFallsBack(t *testing.T) {
	detector := &stubDetector{err: fmt.Errorf("rvm exploded")}
	r := NewResolver(nil, Metadata{}, detector)

	versions := r.Versions(context.Background())
	assert.Equal(t, []string{"1.8.7", "1.9.2", "1.9.3"}, versions)
}

func TestScripts_ConfiguredVerbatimElseDefault(t *testing.T) {
	r := NewResolver(nil, Metadata{}, nil)
	assert.Equal(t, "rake travis", r.Script())
	assert.Equal(t, DefaultTravis().BeforeScript, r.BeforeScript())
	assert.Empty(t, r.AfterScript())

	cfg := &Config{Travis: TravisConfig{
		Script:       "rake spec",
		BeforeScript: []string{"bundle install"},
		AfterScript:  []string{"rake cleanup"},
	}}
	r = NewResolver(cfg, Metadata{}, nil)
	assert.Equal(t, "rake spec", r.Script())
	assert.Equal(t, []string{"bundle install"}, r.BeforeScript())
	assert.Equal(t, []string{"rake cleanup"}, r.AfterScript())
}

func TestNotifications_DeveloperEmailsByDefault(t *testing.T) {
	meta := Metadata{Developers: []Developer{
		{Name: "A", Email: "a@x"},
		{Name: "Blank", Email: "  "},
		{Name: "B", Email: "b@x"},
	}}
	r := NewResolver(nil, meta, nil)

	n := r.Notifications()
	assert.Equal(t, []string{"a@x", "b@x"}, n["email"])
}

func TestNotifications_ConfiguredKeysAugmentDefaults(t *testing.T) {
	meta := Metadata{Developers: []Developer{{Email: "a@x"}, {Email: "b@x"}}}
	cfg := &Config{Travis: TravisConfig{
		Notifications: map[string]interface{}{"irc": []interface{}{"chan"}},
	}}
	r := NewResolver(cfg, meta, nil)

	n := r.Notifications()
	assert.Equal(t, []string{"a@x", "b@x"}, n["email"])
	assert.Equal(t, []interface{}{"chan"}, n["irc"])
}

func TestNotifications_ConfiguredEmailReplacesDefault(t *testing.T) {
	meta := Metadata{Developers: []Developer{{Email: "a@x"}, {Email: "b@x"}}}
	cfg := &Config{Travis: TravisConfig{
		Notifications: map[string]interface{}{"email": []interface{}{"c@x"}},
	}}
	r := NewResolver(cfg, meta, nil)

	n := r.Notifications()
	assert.Equal(t, []interface{}{"c@x"}, n["email"])
}

func TestLanguageAndAPIURL(t *testing.T) {
	r := NewResolver(nil, Metadata{}, nil)
	assert.Equal(t, "ruby", r.Language())
	assert.Equal(t, DefaultAPIURL, r.APIURL())

	cfg := &Config{Travis: TravisConfig{Language: "go", APIURL: "https://ci.example.com"}}
	r = NewResolver(cfg, Metadata{}, nil)
	assert.Equal(t, "go", r.Language())
	assert.Equal(t, "https://ci.example.com", r.APIURL())
}

func TestTokenIsSet(t *testing.T) {
	assert.False(t, TokenIsSet(""))
	assert.False(t, TokenIsSet(TokenSentinel))
	assert.True(t, TokenIsSet("abc123"))
}

func TestResolve_Complete(t *testing.T) {
	meta := Metadata{Developers: []Developer{{Email: "a@x"}}}
	r := NewResolver(nil, meta, &stubDetector{versions: []string{"2.1.0-p76"}})

	resolved := r.Resolve(context.Background())
	assert.Equal(t, []string{"2.1.0"}, resolved.Versions)
	assert.Equal(t, "ruby", resolved.Language)
	assert.Equal(t, "rake travis", resolved.Script)
	assert.Equal(t, []string{"a@x"}, resolved.Notifications["email"])
}
