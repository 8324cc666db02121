// Package rvm probes the local Ruby version manager for installed
// interpreter versions. Detection is best-effort: any environment where rvm
// is absent or unreadable degrades to "nothing detected" rather than an
// error, so configuration resolution can fall back to configured defaults.
package rvm

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/travkit/travkit/command"
	"github.com/travkit/travkit/logging"
)

// Detector shells out to rvm and parses its report of passing interpreter
// versions. It implements config.VersionDetector.
type Detector struct {
	builder *command.SafeBuilder

	// MarkerDir gates detection: rvm is only consulted when this directory
	// exists. Defaults to ~/.rvm.
	MarkerDir string
}

// New creates a Detector using the real command executor.
func New() *Detector {
	return NewWithExecutor(&command.RealExecutor{})
}

// NewWithExecutor creates a Detector with a custom executor, allowing tests
// to substitute the rvm binary.
func NewWithExecutor(exec command.Executor) *Detector {
	marker := ""
	if home, err := os.UserHomeDir(); err == nil {
		marker = filepath.Join(home, ".rvm")
	}
	return &Detector{
		builder:   command.NewSafeBuilderWithExecutor(exec),
		MarkerDir: marker,
	}
}

// Detect returns the versions rvm reports as passing, or nil when rvm is
// not installed, the marker directory is absent, or its output carries no
// passing versions.
func (d *Detector) Detect(ctx context.Context) ([]string, error) {
	log := logging.NewLogger("rvm")

	if d.MarkerDir == "" {
		return nil, nil
	}
	if _, err := os.Stat(d.MarkerDir); err != nil {
		log.WithField("marker", d.MarkerDir).Debug("rvm marker directory absent, skipping detection")
		return nil, nil
	}

	cmd, err := d.builder.Build(ctx, "rvm", "list")
	if err != nil {
		return nil, nil
	}

	output, err := cmd.Exec().Output()
	if err != nil {
		log.WithError(err).Debug("rvm list failed, skipping detection")
		return nil, nil
	}

	return ParsePassed(string(output)), nil
}

// ParsePassed extracts the comma-separated version list from the first line
// of probe output containing a "Passed:" marker. Entries are returned as
// reported, trailing qualifiers included; normalization is the resolver's
// concern.
func ParsePassed(output string) []string {
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, "Passed:")
		if idx < 0 {
			continue
		}

		rest := line[idx+len("Passed:"):]
		parts := strings.Split(rest, ",")
		versions := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				versions = append(versions, p)
			}
		}
		if len(versions) > 0 {
			return versions
		}
	}
	return nil
}
