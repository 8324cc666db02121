package cli

import (
	"fmt"
	"os"

	"github.com/travkit/travkit/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeIdentityMissing:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Hook commands need a GitHub identity: set github.user and a GitHub remote named origin.\n")
		return err

	case errors.ErrCodeTokenUnset:
		fmt.Fprintf(os.Stderr, "❌ GitHub token is unset.\n")
		fmt.Fprintf(os.Stderr, "Run 'git config github.token <token>' or set travis.token in .travkit.yml\n")
		return err

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a .travkit.yml or pass --config.\n")
		return err

	case errors.ErrCodeHookAPI:
		if travisErr, ok := err.(*errors.TravisError); ok {
			fmt.Fprintf(os.Stderr, "❌ Hook API request failed (HTTP %v)\n", travisErr.Details["status"])
			fmt.Fprintf(os.Stderr, "%s\n", travisErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "❌ Hook API request failed: %v\n", err)
		}
		return err

	case errors.ErrCodeDocInvalid:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'travkit edit' to fix the document interactively.\n")
		return err

	case errors.ErrCodeEditAborted:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if travisErr, ok := err.(*errors.TravisError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", travisErr.ToJSON())
			}
		}
		return err
	}
}
