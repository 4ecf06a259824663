package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chukul/awsctx/internal"
	"github.com/chukul/awsctx/internal/ui"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type launcher interface {
	Login(ctx context.Context, loginCommand, profile string) error
	HandoffToShell(shell, profile string) error
}

// app wires the components for one invocation. The function fields are the
// collaborators that touch the terminal or the network.
type app struct {
	cfg          internal.Config
	log          *logrus.Entry
	store        *internal.CurrentProfileStore
	validator    *internal.SessionValidator
	orchestrator *internal.SessionOrchestrator
	launcher     launcher

	stdout io.Writer
	stderr io.Writer

	now         func() time.Time
	interactive func() bool
	pick        func(prompt string, options []ui.Option) (string, error)
	identity    func(ctx context.Context, cfg internal.Config, profile string) (*internal.Identity, error)
}

func newApp(debug bool) (*app, error) {
	cfg, err := internal.LoadConfig(os.Getenv)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}

	log := logrus.NewEntry(internal.NewLogger(os.Stderr, cfg.Debug))
	return newAppWithConfig(cfg, log), nil
}

func newAppWithConfig(cfg internal.Config, log *logrus.Entry) *app {
	validator := internal.NewSessionValidator(log)
	return &app{
		cfg:          cfg,
		log:          log,
		store:        internal.NewCurrentProfileStore(cfg.MarkerFile),
		validator:    validator,
		orchestrator: internal.NewSessionOrchestrator(validator, log),
		launcher:     internal.NewLauncher(log),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		now:          time.Now,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
		},
		pick:     ui.Pick,
		identity: internal.WhoAmI,
	}
}

func (a *app) run(ctx context.Context, opts rootOptions, args []string) error {
	if opts.shellInit {
		printShellInit(a.stdout, a.cfg.Shell)
		return nil
	}

	profiles, err := internal.LoadProfiles(a.cfg, a.log)
	if err != nil {
		return err
	}
	if profiles.Catalog.Cardinality() == 0 {
		return internal.ErrNoProfiles
	}

	current, err := a.store.Read()
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"currentProfile": current,
		"profileFile":    a.store.Path(),
		"ssoCacheDir":    a.cfg.SSOCacheDir,
	}).Debug("initialized")

	switch {
	case opts.current:
		fmt.Fprintln(a.stdout, current)
		return nil
	case opts.refresh:
		return a.refresh(ctx, profiles, profileArg(args, current))
	case opts.whoami:
		return a.whoami(ctx, profiles, profileArg(args, current))
	}

	return a.switchProfile(ctx, profiles, current, args)
}

// switchProfile selects a profile, persists it, logs in when the SSO session
// is stale and finally replaces the process with the user's shell.
func (a *app) switchProfile(ctx context.Context, profiles *internal.Profiles, current string, args []string) error {
	var selected string
	if len(args) == 1 {
		selected = args[0]
		if !profiles.Has(selected) {
			return fmt.Errorf("%w '%s'", internal.ErrUnknownProfile, selected)
		}
	} else {
		if !a.interactive() {
			return errors.New("interactive selection requires a terminal, pass a profile name instead")
		}
		choice, err := a.pick("Select an AWS profile:", toOptions(internal.Choices(profiles.Catalog, current)))
		if err != nil {
			return err
		}
		selected = choice
	}

	if err := a.store.Write(selected); err != nil {
		return err
	}

	if a.orchestrator.RequiresLogin(selected, profiles.SSO, a.cfg.SSOCacheDir, a.now()) {
		fmt.Fprintf(a.stderr, "🔐 No valid SSO session, logging in to '%s'...\n", selected)
		if err := a.launcher.Login(ctx, a.cfg.LoginCommand, selected); err != nil {
			return err
		}
	}

	return a.launcher.HandoffToShell(a.cfg.Shell, selected)
}

func profileArg(args []string, current string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return current
}

func toOptions(choices []internal.Choice) []ui.Option {
	options := make([]ui.Option, len(choices))
	for i, c := range choices {
		options[i] = ui.Option{Value: c.Value, Label: c.Label, Current: c.Current}
	}
	return options
}
