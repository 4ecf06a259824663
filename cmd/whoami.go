package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/chukul/awsctx/internal"
	"github.com/chukul/awsctx/internal/ui"
)

// whoami prints the STS caller identity of profile and, for SSO profiles,
// how long the cached session has left.
func (a *app) whoami(ctx context.Context, profiles *internal.Profiles, profile string) error {
	if !profiles.Has(profile) {
		return fmt.Errorf("%w '%s'", internal.ErrUnknownProfile, profile)
	}

	task := func() (*internal.Identity, error) {
		return a.identity(ctx, a.cfg, profile)
	}

	var (
		id  *internal.Identity
		err error
	)
	if a.interactive() {
		id, err = ui.Spin("Resolving caller identity...", task)
	} else {
		id, err = task()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%-10s %s\n", "PROFILE", id.Profile)
	fmt.Fprintf(a.stdout, "%-10s %s\n", "ACCOUNT", id.Account)
	fmt.Fprintf(a.stdout, "%-10s %s\n", "ARN", id.Arn)
	fmt.Fprintf(a.stdout, "%-10s %s\n", "USER ID", id.UserID)

	if meta, ok := profiles.SSO[profile]; ok {
		fmt.Fprintf(a.stdout, "%-10s %s\n", "SSO", a.ssoStatus(meta))
	}
	return nil
}

// ssoStatus describes the longest-lived cached token for the profile's start
// URL, falling back to any token in the cache.
func (a *app) ssoStatus(meta internal.SSOMetadata) string {
	now := a.now()

	var best, bestForURL *internal.SessionToken
	for _, t := range a.validator.Scan(a.cfg.SSOCacheDir) {
		if best == nil || t.ExpiresAt.After(best.ExpiresAt) {
			best = &t
		}
		if strings.TrimRight(t.StartURL, "/") == strings.TrimRight(meta.StartURL, "/") &&
			(bestForURL == nil || t.ExpiresAt.After(bestForURL.ExpiresAt)) {
			bestForURL = &t
		}
	}
	if bestForURL != nil {
		best = bestForURL
	}

	if best == nil {
		return "no cached session"
	}
	if !best.ValidAt(now) {
		return fmt.Sprintf("expired at %s", internal.FormatLocal(best.ExpiresAt))
	}
	return fmt.Sprintf("valid until %s (%s left)", internal.FormatLocal(best.ExpiresAt), internal.FormatRemaining(best.ExpiresAt.Sub(now)))
}
