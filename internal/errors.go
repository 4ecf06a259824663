package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProfiles is returned when neither the credentials nor the config file define a profile
	ErrNoProfiles = errors.New("no AWS profiles found")
	// ErrUnknownProfile is returned when a profile name is not part of the catalog
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrNotSSOProfile is returned when an SSO-only operation targets a static profile
	ErrNotSSOProfile = errors.New("not an SSO profile")
	// ErrEmptyProfileName is returned when writing an empty name to the marker file
	ErrEmptyProfileName = errors.New("profile name must not be empty")
)

// ConfigParseError reports malformed content in one of the AWS configuration files.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// LoginError carries the exit code of a failed login subprocess.
type LoginError struct {
	Profile string
	Code    int
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("sso login for profile '%s' exited with status %d", e.Profile, e.Code)
}
