package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *TravisError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *TravisError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// IdentityMissing creates a missing repository identity error
func IdentityMissing(reason string) *TravisError {
	return New(ErrCodeIdentityMissing, fmt.Sprintf("unable to determine repository identity: %s", reason))
}

// TokenUnset creates an unset token error
func TokenUnset() *TravisError {
	return New(ErrCodeTokenUnset,
		"GitHub token is unset; run 'git config github.token <token>' or set travis.token in your config")
}

// HookAPI creates a webhook API failure error
func HookAPI(status int, message string) *TravisError {
	if message == "" {
		message = "request failed"
	}
	return New(ErrCodeHookAPI, fmt.Sprintf("hook API error (HTTP %d): %s", status, message)).
		WithDetail("status", status)
}

// DocInvalid creates an invalid CI document error
func DocInvalid(path string, issues int) *TravisError {
	return New(ErrCodeDocInvalid, fmt.Sprintf("%s has %d validation issue(s)", path, issues)).
		WithDetail("path", path).
		WithDetail("issues", issues)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *TravisError {
	travisErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		travisErr = travisErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return travisErr
}
