package config

import (
	"context"
	"sort"
	"strings"
)

// Resolved is the fully-resolved configuration consumed by the document
// generator. Every field has had the override order applied:
// detected versions > user/project config > built-in defaults.
type Resolved struct {
	BeforeScript  []string
	AfterScript   []string
	Script        string
	Language      string
	Versions      []string
	Notifications map[string]interface{}
}

// Resolver merges built-in defaults, user/project configuration, and
// runtime-detected interpreter versions into a single resolved view. All
// inputs are read-only; resolution never fails.
type Resolver struct {
	defaults TravisConfig
	user     TravisConfig
	meta     Metadata
	detector VersionDetector
}

// NewResolver creates a resolver over the given configuration layers. The
// detector may be nil, in which case only configured and default versions
// are considered.
func NewResolver(cfg *Config, meta Metadata, detector VersionDetector) *Resolver {
	var user TravisConfig
	if cfg != nil {
		user = cfg.Travis
	}
	return &Resolver{
		defaults: DefaultTravis(),
		user:     user,
		meta:     meta,
		detector: detector,
	}
}

// Resolve produces the complete resolved configuration.
func (r *Resolver) Resolve(ctx context.Context) Resolved {
	return Resolved{
		BeforeScript:  r.BeforeScript(),
		AfterScript:   r.AfterScript(),
		Script:        r.Script(),
		Language:      r.Language(),
		Versions:      r.Versions(ctx),
		Notifications: r.Notifications(),
	}
}

// Versions resolves the interpreter version list. Detected versions win when
// the detector reports any; each detected entry has its trailing qualifier
// (everything after the first hyphen) stripped and the list is sorted and
// deduplicated. Otherwise the configured list is used, otherwise the
// built-in default, both sorted.
func (r *Resolver) Versions(ctx context.Context) []string {
	if r.detector != nil {
		detected, err := r.detector.Detect(ctx)
		if err == nil && len(detected) > 0 {
			return normalizeVersions(detected)
		}
	}

	if len(r.user.Versions) > 0 {
		return sortedCopy(r.user.Versions)
	}

	return sortedCopy(r.defaults.Versions)
}

// BeforeScript resolves the commands run before the build script.
func (r *Resolver) BeforeScript() []string {
	if len(r.user.BeforeScript) > 0 {
		return r.user.BeforeScript
	}
	return r.defaults.BeforeScript
}

// AfterScript resolves the commands run after the build script.
func (r *Resolver) AfterScript() []string {
	if len(r.user.AfterScript) > 0 {
		return r.user.AfterScript
	}
	return r.defaults.AfterScript
}

// Script resolves the build command.
func (r *Resolver) Script() string {
	if r.user.Script != "" {
		return r.user.Script
	}
	return r.defaults.Script
}

// Language resolves the CI language tag.
func (r *Resolver) Language() string {
	if r.user.Language != "" {
		return r.user.Language
	}
	return r.defaults.Language
}

// APIURL resolves the webhook provider API endpoint.
func (r *Resolver) APIURL() string {
	if r.user.APIURL != "" {
		return r.user.APIURL
	}
	return r.defaults.APIURL
}

// Token returns the configured access token, which may still be the unset
// sentinel; callers requiring identity must check with TokenIsSet.
func (r *Resolver) Token() string {
	if r.user.Token != "" {
		return r.user.Token
	}
	return r.defaults.Token
}

// TokenIsSet reports whether the token has been configured to a real value.
func TokenIsSet(token string) bool {
	return token != "" && token != TokenSentinel
}

// Notifications resolves the notifications map. The default layer carries an
// email list of the non-blank developer addresses in declaration order;
// configured keys override same-named defaults, so a configured email list
// replaces the developer-derived one outright.
func (r *Resolver) Notifications() map[string]interface{} {
	result := make(map[string]interface{})

	emails := make([]string, 0, len(r.meta.Developers))
	for _, dev := range r.meta.Developers {
		if strings.TrimSpace(dev.Email) != "" {
			emails = append(emails, dev.Email)
		}
	}
	result["email"] = emails

	for k, v := range r.user.Notifications {
		result[k] = v
	}

	return result
}

// normalizeVersions strips trailing qualifier suffixes (a patch or platform
// tag after a hyphen), then sorts and deduplicates the list.
func normalizeVersions(versions []string) []string {
	seen := make(map[string]bool, len(versions))
	result := make([]string, 0, len(versions))
	for _, v := range versions {
		v = strings.TrimSpace(v)
		if idx := strings.Index(v, "-"); idx >= 0 {
			v = v[:idx]
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

func sortedCopy(versions []string) []string {
	result := make([]string, len(versions))
	copy(result, versions)
	sort.Strings(result)
	return result
}
