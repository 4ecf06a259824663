package internal

import (
	"time"

	"github.com/sirupsen/logrus"
)

// SessionOrchestrator decides whether a selected profile needs an SSO login
// before the shell is handed over. It never runs the login itself.
type SessionOrchestrator struct {
	validator *SessionValidator
	log       *logrus.Entry
}

func NewSessionOrchestrator(validator *SessionValidator, log *logrus.Entry) *SessionOrchestrator {
	if validator == nil {
		validator = NewSessionValidator(log)
	}
	return &SessionOrchestrator{
		validator: validator,
		log:       orDiscard(log).WithField("component", "orchestrator"),
	}
}

// RequiresLogin is false for profiles without SSO metadata. For SSO profiles
// it is true unless the cache holds an unexpired token.
func (o *SessionOrchestrator) RequiresLogin(selected string, sso map[string]SSOMetadata, cacheDir string, now time.Time) bool {
	meta, ok := sso[selected]
	if !ok {
		o.log.WithField("profile", selected).Debug("selected profile is not an SSO profile")
		return false
	}

	if o.validator.IsValid(cacheDir, now) {
		o.log.WithField("profile", selected).Debug("sso session is valid, skipping login")
		return false
	}

	o.log.WithFields(logrus.Fields{
		"profile":   selected,
		"startUrl":  meta.StartURL,
		"accountId": meta.AccountID,
		"roleName":  meta.RoleName,
	}).Debug("sso session invalid, login required")
	return true
}
