package internal

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// Profiles is everything derived from the two AWS configuration files.
type Profiles struct {
	Catalog mapset.Set[string]
	SSO     map[string]SSOMetadata
}

// LoadProfiles reads the credentials and config files named by cfg. Both are
// read fresh on every call; either may be missing.
func LoadProfiles(cfg Config, log *logrus.Entry) (*Profiles, error) {
	log = orDiscard(log).WithField("component", "profiles")

	credentials, err := ReadSections(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	config, err := ReadSections(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}

	p := &Profiles{
		Catalog: BuildCatalog(credentials, config),
		SSO:     ClassifySSO(config),
	}

	ssoNames := make([]string, 0, len(p.SSO))
	for name := range p.SSO {
		ssoNames = append(ssoNames, name)
	}
	log.WithFields(logrus.Fields{
		"credentialsFile": cfg.CredentialsFile,
		"configFile":      cfg.ConfigFile,
		"profiles":        p.Catalog.Cardinality(),
		"ssoProfiles":     ssoNames,
	}).Debug("loaded profiles")

	return p, nil
}

// Has reports whether name is a known profile.
func (p *Profiles) Has(name string) bool {
	return p.Catalog.Contains(name)
}

// IsSSO reports whether name carries complete SSO metadata.
func (p *Profiles) IsSSO(name string) bool {
	_, ok := p.SSO[name]
	return ok
}
