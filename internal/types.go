package internal

import "time"

// Sections maps an INI section header to its key/value pairs.
type Sections map[string]map[string]string

// SSOMetadata holds the fields that make a profile SSO-backed.
type SSOMetadata struct {
	StartURL  string
	AccountID string
	RoleName  string
	Region    string // sso_region, informational only

	// Section is the raw config section the metadata was taken from
	Section map[string]string
}

// TokenKind tags the shape a cache entry was decoded as.
type TokenKind int

const (
	TokenUnrecognized TokenKind = iota
	TokenAccess                 // accessToken + expiresAt
	TokenSession                // startUrl + expiresAt
)

func (k TokenKind) String() string {
	switch k {
	case TokenAccess:
		return "access-token"
	case TokenSession:
		return "sso-session"
	default:
		return "unrecognized"
	}
}

// SessionToken is a decoded entry from the SSO cache directory.
type SessionToken struct {
	File      string
	Kind      TokenKind
	StartURL  string
	ExpiresAt time.Time
}

// ValidAt reports whether the token expires strictly after now.
func (t SessionToken) ValidAt(now time.Time) bool {
	return t.Kind != TokenUnrecognized && t.ExpiresAt.After(now)
}

// Choice is one entry of the profile picker.
type Choice struct {
	Value   string
	Label   string
	Current bool
}
