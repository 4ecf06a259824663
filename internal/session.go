package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// expiresAt layouts written by the AWS CLI and SDKs over time
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05UTC",
}

// cacheEntry is the subset of an SSO cache file used to tell shapes apart.
// Fields are decoded loosely so a value of the wrong type reads as absent.
type cacheEntry struct {
	AccessToken any `json:"accessToken"`
	StartURL    any `json:"startUrl"`
	ExpiresAt   any `json:"expiresAt"`
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// SessionValidator inspects the SSO token cache written by the AWS CLI.
// It never writes to the cache and keeps no state between calls.
type SessionValidator struct {
	log *logrus.Entry
}

func NewSessionValidator(log *logrus.Entry) *SessionValidator {
	return &SessionValidator{log: orDiscard(log).WithField("component", "session")}
}

// IsValid reports whether any cached token in cacheDir expires after now.
// A missing directory and unreadable or unrecognized files count as no token.
func (v *SessionValidator) IsValid(cacheDir string, now time.Time) bool {
	tokens := v.Scan(cacheDir)

	valid := false
	for _, t := range tokens {
		ok := t.ValidAt(now)
		v.log.WithFields(logrus.Fields{
			"file":      filepath.Base(t.File),
			"kind":      t.Kind,
			"expiresAt": t.ExpiresAt.Format(time.RFC3339),
			"timeLeft":  FormatRemaining(t.ExpiresAt.Sub(now)),
			"isValid":   ok,
		}).Debug("checked cached token")
		valid = valid || ok
	}

	v.log.WithFields(logrus.Fields{"cacheDir": cacheDir, "tokens": len(tokens), "isValid": valid}).
		Debug("sso session validation result")
	return valid
}

// Scan decodes every *.json file directly inside cacheDir. Files that fail to
// decode or match neither token shape are skipped.
func (v *SessionValidator) Scan(cacheDir string) []SessionToken {
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			v.log.WithField("cacheDir", cacheDir).Debug("sso cache directory does not exist")
		} else {
			v.log.WithError(err).WithField("cacheDir", cacheDir).Debug("failed to list sso cache directory")
		}
		return nil
	}

	var tokens []SessionToken
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(cacheDir, e.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			v.log.WithError(err).WithField("file", e.Name()).Debug("failed to read cache file")
			continue
		}

		token, err := DecodeToken(data)
		if err != nil {
			v.log.WithError(err).WithField("file", e.Name()).Debug("skipping cache file")
			continue
		}
		token.File = path
		tokens = append(tokens, token)
	}
	return tokens
}

// DecodeToken decodes a cache file as an access token, falling back to an
// SSO session. Anything else is an error.
func DecodeToken(data []byte) (SessionToken, error) {
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return SessionToken{}, fmt.Errorf("malformed cache entry: %w", err)
	}

	accessToken := stringField(entry.AccessToken)
	startURL := stringField(entry.StartURL)
	expiresAt := stringField(entry.ExpiresAt)

	var token SessionToken
	switch {
	case accessToken != "" && expiresAt != "":
		token.Kind = TokenAccess
	case startURL != "" && expiresAt != "":
		token.Kind = TokenSession
	default:
		return SessionToken{}, errors.New("cache entry holds no token")
	}

	expiry, err := parseExpiry(expiresAt)
	if err != nil {
		return SessionToken{}, err
	}
	token.ExpiresAt = expiry
	token.StartURL = startURL
	return token, nil
}

func parseExpiry(value string) (time.Time, error) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid expiresAt %q", value)
}
