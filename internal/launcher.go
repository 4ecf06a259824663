package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"
)

// Launcher runs the external commands awsctx hands control to: the SSO login
// command and the replacement shell.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// replace swaps the current process image; tests stub it out
	replace func(argv0 string, argv []string, env []string) error
	log     *logrus.Entry
}

func NewLauncher(log *logrus.Entry) *Launcher {
	return &Launcher{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		replace: replaceProcess,
		log:     orDiscard(log).WithField("component", "launcher"),
	}
}

// Login runs loginCommand with the profile name appended, attached to the
// terminal. A non-zero exit is reported as a *LoginError with the same code.
func (l *Launcher) Login(ctx context.Context, loginCommand, profile string) error {
	args, err := shellwords.Parse(loginCommand)
	if err != nil {
		return fmt.Errorf("invalid login command %q: %w", loginCommand, err)
	}
	if len(args) == 0 {
		return fmt.Errorf("login command is empty")
	}
	args = append(args, profile)

	l.log.WithField("argv", args).Debug("initiating sso login")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &LoginError{Profile: profile, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return nil
}

// HandoffToShell replaces the running process with shell, exporting
// AWS_PROFILE so the new shell picks up the selection.
func (l *Launcher) HandoffToShell(shell, profile string) error {
	args, err := shellwords.Parse(shell)
	if err != nil {
		return fmt.Errorf("invalid shell %q: %w", shell, err)
	}
	if len(args) == 0 {
		return fmt.Errorf("no shell configured")
	}

	path, err := exec.LookPath(args[0])
	if err != nil {
		return fmt.Errorf("shell %s not found: %w", args[0], err)
	}

	env := withEnv(os.Environ(), "AWS_PROFILE", profile)
	l.log.WithFields(logrus.Fields{"shell": path, "profile": profile}).Debug("handing off to shell")
	return l.replace(path, args, env)
}

// withEnv returns environ with key set to value, dropping earlier entries.
func withEnv(environ []string, key, value string) []string {
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if strings.HasPrefix(kv, key+"=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, key+"="+value)
}
