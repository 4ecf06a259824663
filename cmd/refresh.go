package cmd

import (
	"context"
	"fmt"

	"github.com/chukul/awsctx/internal"
)

// refresh forces an SSO login for profile regardless of the cached session.
func (a *app) refresh(ctx context.Context, profiles *internal.Profiles, profile string) error {
	a.log.WithField("profile", profile).WithField("isSSOProfile", profiles.IsSSO(profile)).Debug("refresh requested")

	if !profiles.IsSSO(profile) {
		return fmt.Errorf("profile '%s' is %w", profile, internal.ErrNotSSOProfile)
	}

	fmt.Fprintf(a.stderr, "🔄 Refreshing SSO session for '%s'...\n", profile)
	if err := a.launcher.Login(ctx, a.cfg.LoginCommand, profile); err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "✅ Session for '%s' refreshed.\n", profile)
	return nil
}
