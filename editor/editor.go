// Package editor implements the interactive edit-validate loop for the CI
// document: the document is edited as a temporary copy, validated on save,
// and only replaces the destination once valid.
package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"

	"github.com/travkit/travkit/command"
	"github.com/travkit/travkit/errors"
	"github.com/travkit/travkit/logging"
	"github.com/travkit/travkit/travis"
)

// DefaultEditor is used when the EDITOR environment variable is unset.
const DefaultEditor = "vi"

// EditorCommand returns the editor selected by the environment.
func EditorCommand() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return DefaultEditor
}

// Loop drives the edit session. The zero values of the injectable fields
// give production behavior; tests replace them to avoid spawning a real
// editor, reading a terminal, or killing the test process.
type Loop struct {
	Validator *travis.Validator
	Editor    string

	// Executor creates the editor process. Defaults to the real executor.
	Executor command.Executor

	// Interactive reports whether stdin is attached to a terminal.
	Interactive func() bool

	// Confirm asks the retry question and reports the answer.
	Confirm func(question string) (bool, error)

	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// NewLoop creates a production edit loop over the given validator.
func NewLoop(validator *travis.Validator) *Loop {
	return &Loop{
		Validator: validator,
		Editor:    EditorCommand(),
	}
}

// Run edits the document at dest until it validates or the user gives up.
// The destination is only written on success; in a non-interactive context
// an invalid edit terminates the process with status 1 immediately.
func (l *Loop) Run(ctx context.Context, dest string) error {
	log := logging.NewLogger("editor")

	tmp, err := copyToTemp(dest)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	for {
		// EDITING
		if err := l.edit(ctx, tmp); err != nil {
			return errors.Wrap(err, errors.ErrCodeEditorFailed,
				fmt.Sprintf("editor %q failed", l.Editor))
		}

		// VALIDATING
		if l.validator().Valid(tmp) {
			log.WithField("path", dest).Debug("edited document valid, replacing destination")
			return replaceFile(tmp, dest)
		}

		if !l.interactive() {
			l.exit(1)
			return errors.New(errors.ErrCodeEditAborted,
				"document is invalid and no terminal is attached for a retry")
		}

		// RETRY_PROMPT
		retry, err := l.confirm(fmt.Sprintf("%s is invalid. Retry edit?", filepath.Base(dest)))
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeEditAborted, "retry prompt failed")
		}
		if !retry {
			return errors.New(errors.ErrCodeEditAborted, "edit abandoned, destination unchanged")
		}
	}
}

// edit blocks until the editor exits. The editor runs without a timeout:
// an editing session legitimately lasts as long as the user needs.
// EDITOR may carry flags ("code --wait"), so the value is shell-split
// rather than treated as a bare program name.
func (l *Loop) edit(ctx context.Context, path string) error {
	words, err := shellquote.Split(l.editorCommand())
	if err != nil {
		return fmt.Errorf("parsing editor command %q: %w", l.editorCommand(), err)
	}
	if len(words) == 0 {
		return fmt.Errorf("editor command is empty")
	}

	execCmd := l.executor().CommandContext(ctx, words[0], append(words[1:], path)...)
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	return execCmd.Run()
}

func (l *Loop) editorCommand() string {
	if l.Editor != "" {
		return l.Editor
	}
	return EditorCommand()
}

func (l *Loop) validator() *travis.Validator {
	return l.Validator
}

func (l *Loop) executor() command.Executor {
	if l.Executor != nil {
		return l.Executor
	}
	return &command.RealExecutor{}
}

func (l *Loop) interactive() bool {
	if l.Interactive != nil {
		return l.Interactive()
	}
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (l *Loop) confirm(question string) (bool, error) {
	if l.Confirm != nil {
		return l.Confirm(question)
	}
	retry := true
	err := survey.AskOne(&survey.Confirm{Message: question, Default: true}, &retry)
	return retry, err
}

func (l *Loop) exit(code int) {
	if l.Exit != nil {
		l.Exit(code)
		return
	}
	os.Exit(code)
}

// copyToTemp copies the document to a temporary file for editing. A missing
// source yields an empty temp file so a document can be authored from
// scratch.
func copyToTemp(src string) (string, error) {
	f, err := os.CreateTemp("", "travkit-edit-*.yml")
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return f.Name(), nil
		}
		os.Remove(f.Name())
		return "", err
	}

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// replaceFile writes the final temp contents over the destination. A plain
// copy instead of a rename keeps it working across filesystems, since the
// temp directory is often a different mount than the repository.
func replaceFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}
