package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/chukul/awsctx/internal"
	"github.com/chukul/awsctx/internal/ui"
	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

type fakeLauncher struct {
	logins   []string
	handoffs []string
	loginErr error
}

func (f *fakeLauncher) Login(_ context.Context, _ string, profile string) error {
	f.logins = append(f.logins, profile)
	return f.loginErr
}

func (f *fakeLauncher) HandoffToShell(_ string, profile string) error {
	f.handoffs = append(f.handoffs, profile)
	return nil
}

type testApp struct {
	*app
	launcher *fakeLauncher
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	picks    []ui.Option
	dir      *fs.Dir
}

const (
	testCredentials = "[dev]\naws_access_key_id = x\n\n[prod]\naws_access_key_id = y\n"
	testConfig      = `[profile dev]
region = eu-west-1

[profile staging]
sso_start_url = https://example.awsapps.com/start
sso_account_id = 111122223333
sso_role_name = AdministratorAccess
`
)

func newTestApp(t *testing.T, pick string, cacheOps ...fs.PathOp) *testApp {
	t.Helper()
	dir := fs.NewDir(t, "awsctx-cmd",
		fs.WithFile("credentials", testCredentials),
		fs.WithFile("config", testConfig),
		fs.WithDir("cache", cacheOps...),
	)
	cfg := internal.Config{
		CredentialsFile: dir.Join("credentials"),
		ConfigFile:      dir.Join("config"),
		MarkerFile:      dir.Join("awsctx"),
		SSOCacheDir:     dir.Join("cache"),
		Shell:           "/bin/sh",
		LoginCommand:    internal.DefaultLoginCommand,
	}

	ta := &testApp{
		app:      newAppWithConfig(cfg, logrus.NewEntry(internal.NewLogger(io.Discard, true))),
		launcher: &fakeLauncher{},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		dir:      dir,
	}
	ta.app.launcher = ta.launcher
	ta.app.stdout = ta.stdout
	ta.app.stderr = ta.stderr
	ta.app.interactive = func() bool { return true }
	ta.app.pick = func(_ string, options []ui.Option) (string, error) {
		ta.picks = options
		if pick == "" {
			return "", ui.ErrCancelled
		}
		return pick, nil
	}
	return ta
}

func (ta *testApp) marker(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(ta.dir.Join("awsctx"))
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	assert.NilError(t, err)
	return string(b)
}

func TestSelectStaticProfileNeverLogsIn(t *testing.T) {
	ta := newTestApp(t, "prod")

	assert.NilError(t, ta.run(context.Background(), rootOptions{}, nil))
	assert.Check(t, is.Len(ta.launcher.logins, 0))
	assert.Check(t, is.DeepEqual(ta.launcher.handoffs, []string{"prod"}))
	assert.Check(t, is.Equal(ta.marker(t), "prod"))
}

func TestSelectSSOProfileWithEmptyCacheLogsIn(t *testing.T) {
	ta := newTestApp(t, "staging")

	assert.NilError(t, ta.run(context.Background(), rootOptions{}, nil))
	assert.Check(t, is.DeepEqual(ta.launcher.logins, []string{"staging"}))
	assert.Check(t, is.DeepEqual(ta.launcher.handoffs, []string{"staging"}))
}

func TestSelectSSOProfileWithValidSessionSkipsLogin(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	ta := newTestApp(t, "staging", fs.WithFile("token.json",
		fmt.Sprintf(`{"accessToken":"abc","expiresAt":%q}`, expires)))

	assert.NilError(t, ta.run(context.Background(), rootOptions{}, nil))
	assert.Check(t, is.Len(ta.launcher.logins, 0))
	assert.Check(t, is.DeepEqual(ta.launcher.handoffs, []string{"staging"}))
}

func TestSelectOffersSortedChoicesWithCurrent(t *testing.T) {
	ta := newTestApp(t, "dev")
	fs.Apply(t, ta.dir, fs.WithFile("awsctx", "prod"))

	assert.NilError(t, ta.run(context.Background(), rootOptions{}, nil))

	var labels []string
	for _, o := range ta.picks {
		labels = append(labels, o.Label)
	}
	assert.Check(t, is.DeepEqual(labels, []string{"dev", "prod (current)", "staging"}))
	assert.Check(t, is.Equal(ta.marker(t), "dev"))
}

func TestSelectCancelledHasNoSideEffects(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.run(context.Background(), rootOptions{}, nil)
	assert.Check(t, is.ErrorIs(err, ui.ErrCancelled))
	assert.Check(t, is.Equal(exitCode(ta.stderr, err), 0))
	assert.Check(t, is.Equal(ta.marker(t), ""))
	assert.Check(t, is.Len(ta.launcher.logins, 0))
	assert.Check(t, is.Len(ta.launcher.handoffs, 0))
}

func TestSelectFailedLoginStopsHandoff(t *testing.T) {
	ta := newTestApp(t, "staging")
	ta.launcher.loginErr = &internal.LoginError{Profile: "staging", Code: 2}

	err := ta.run(context.Background(), rootOptions{}, nil)
	assert.Check(t, is.Equal(exitCode(ta.stderr, err), 2))
	assert.Check(t, is.Len(ta.launcher.handoffs, 0))
}

func TestSelectRequiresTerminal(t *testing.T) {
	ta := newTestApp(t, "prod")
	ta.app.interactive = func() bool { return false }

	err := ta.run(context.Background(), rootOptions{}, nil)
	assert.Check(t, is.ErrorContains(err, "requires a terminal"))
	assert.Check(t, is.Len(ta.launcher.handoffs, 0))
}

func TestSwitchByName(t *testing.T) {
	ta := newTestApp(t, "")
	ta.app.interactive = func() bool { return false }

	assert.NilError(t, ta.run(context.Background(), rootOptions{}, []string{"dev"}))
	assert.Check(t, is.Nil(ta.picks))
	assert.Check(t, is.Equal(ta.marker(t), "dev"))
	assert.Check(t, is.DeepEqual(ta.launcher.handoffs, []string{"dev"}))
}

func TestSwitchUnknownProfile(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.run(context.Background(), rootOptions{}, []string{"ghost"})
	assert.Check(t, is.ErrorIs(err, internal.ErrUnknownProfile))
	assert.Check(t, is.Equal(ta.marker(t), ""))
}

func TestCurrent(t *testing.T) {
	ta := newTestApp(t, "")

	assert.NilError(t, ta.run(context.Background(), rootOptions{current: true}, nil))
	assert.Check(t, is.Equal(ta.stdout.String(), "default\n"))

	fs.Apply(t, ta.dir, fs.WithFile("awsctx", "staging"))
	ta.stdout.Reset()
	assert.NilError(t, ta.run(context.Background(), rootOptions{current: true}, nil))
	assert.Check(t, is.Equal(ta.stdout.String(), "staging\n"))
}

func TestNoProfiles(t *testing.T) {
	ta := newTestApp(t, "prod")
	fs.Apply(t, ta.dir, fs.WithFile("credentials", ""), fs.WithFile("config", ""))

	err := ta.run(context.Background(), rootOptions{current: true}, nil)
	assert.Check(t, is.ErrorIs(err, internal.ErrNoProfiles))
	assert.Check(t, is.Equal(exitCode(ta.stderr, err), 1))
	assert.Check(t, is.Equal(ta.stderr.String(), "No AWS profiles found.\n"))
}

func TestMalformedConfigIsFatal(t *testing.T) {
	ta := newTestApp(t, "prod")
	fs.Apply(t, ta.dir, fs.WithFile("config", "[profile broken\n"))

	err := ta.run(context.Background(), rootOptions{}, nil)
	var parseErr *internal.ConfigParseError
	assert.Check(t, errors.As(err, &parseErr))
	assert.Check(t, is.Nil(ta.picks))
}

func TestRefresh(t *testing.T) {
	ta := newTestApp(t, "")

	assert.NilError(t, ta.run(context.Background(), rootOptions{refresh: true}, []string{"staging"}))
	assert.Check(t, is.DeepEqual(ta.launcher.logins, []string{"staging"}))
	assert.Check(t, is.Len(ta.launcher.handoffs, 0))
}

func TestRefreshDefaultsToCurrent(t *testing.T) {
	ta := newTestApp(t, "")
	fs.Apply(t, ta.dir, fs.WithFile("awsctx", "staging"))

	assert.NilError(t, ta.run(context.Background(), rootOptions{refresh: true}, nil))
	assert.Check(t, is.DeepEqual(ta.launcher.logins, []string{"staging"}))
}

func TestRefreshStaticProfile(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.run(context.Background(), rootOptions{refresh: true}, []string{"prod"})
	assert.Check(t, is.ErrorIs(err, internal.ErrNotSSOProfile))
	assert.Check(t, is.ErrorContains(err, "profile 'prod' is not an SSO profile"))
	assert.Check(t, is.Len(ta.launcher.logins, 0))
}

func TestWhoAmI(t *testing.T) {
	expires := time.Now().Add(90 * time.Minute).UTC().Format(time.RFC3339)
	ta := newTestApp(t, "", fs.WithFile("token.json",
		fmt.Sprintf(`{"accessToken":"abc","startUrl":"https://example.awsapps.com/start","expiresAt":%q}`, expires)))
	ta.app.interactive = func() bool { return false }
	ta.app.identity = func(_ context.Context, _ internal.Config, profile string) (*internal.Identity, error) {
		return &internal.Identity{Profile: profile, Account: "111122223333", Arn: "arn:aws:sts::111122223333:assumed-role/Admin/me", UserID: "AROA:me"}, nil
	}

	assert.NilError(t, ta.run(context.Background(), rootOptions{whoami: true}, []string{"staging"}))

	out := ta.stdout.String()
	assert.Check(t, is.Contains(out, "111122223333"))
	assert.Check(t, is.Contains(out, "assumed-role/Admin/me"))
	assert.Check(t, is.Contains(out, "valid until"))
}

func TestWhoAmIUnknownProfile(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.run(context.Background(), rootOptions{whoami: true}, []string{"ghost"})
	assert.Check(t, is.ErrorIs(err, internal.ErrUnknownProfile))
}

func TestShellInit(t *testing.T) {
	ta := newTestApp(t, "")
	ta.app.cfg.Shell = "/usr/bin/fish"

	assert.NilError(t, ta.run(context.Background(), rootOptions{shellInit: true}, nil))
	assert.Check(t, is.Contains(ta.stdout.String(), "set -gx AWS_PROFILE (awsctx --current"))
}
