package config

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TokenSentinel is the placeholder value for an unconfigured GitHub token.
// A token equal to this value is treated as unset.
const TokenSentinel = "FIX"

// DefaultAPIURL is the REST endpoint of the source-hosting provider that
// carries the repository's hook collection.
const DefaultAPIURL = "https://api.github.com"

// TravisConfig holds the recognized keys under the `travis` namespace of the
// configuration file.
type TravisConfig struct {
	BeforeScript  []string               `yaml:"before_script,omitempty"`
	AfterScript   []string               `yaml:"after_script,omitempty"`
	Script        string                 `yaml:"script,omitempty"`
	Token         string                 `yaml:"token,omitempty"`
	Versions      []string               `yaml:"versions,omitempty"`
	Language      string                 `yaml:"language,omitempty"`
	APIURL        string                 `yaml:"api_url,omitempty"`
	Notifications map[string]interface{} `yaml:"notifications,omitempty"`
}

// Config is the top-level configuration file structure. Unrecognized
// top-level keys are collected into Extensions so other components (e.g.
// logging) can decode their own sections.
type Config struct {
	Travis TravisConfig `yaml:"travis,omitempty"`

	Extensions map[string]interface{} `yaml:",inline"`
}

// Developer identifies a project developer as declared in the project
// metadata.
type Developer struct {
	Name  string
	Email string
}

// Metadata is a read-only view of the host project's metadata, injected into
// the resolver instead of being read from shared mutable state.
type Metadata struct {
	Developers []Developer
}

// VersionDetector reports interpreter versions available in the local
// environment, or nil when detection is not possible. Implementations must
// not fail resolution: an environment without the version manager installed
// returns (nil, nil).
type VersionDetector interface {
	Detect(ctx context.Context) ([]string, error)
}

// DefaultTravis returns the built-in default configuration. The value is
// constructed fresh on every call so callers can never mutate shared state.
func DefaultTravis() TravisConfig {
	return TravisConfig{
		BeforeScript: []string{
			"gem install hoe-travis --no-document",
			"rake travis:before -t",
		},
		Script:   "rake travis",
		Token:    TokenSentinel,
		Versions: []string{"1.8.7", "1.9.2", "1.9.3"},
		Language: "ruby",
		APIURL:   DefaultAPIURL,
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded config file into the provided target struct. The target must be a
// pointer. This provides a type-safe way for components to access their
// custom configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
