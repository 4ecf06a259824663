package internal

import (
	"sort"
	"strings"
)

const (
	keySSOStartURL  = "sso_start_url"
	keySSOAccountID = "sso_account_id"
	keySSORoleName  = "sso_role_name"
	keySSORegion    = "sso_region"
)

// ClassifySSO returns the profiles of the config file that carry a start
// URL, an account id and a role name. Field contents are not validated.
//
// SSO metadata is only ever taken from the config file. When both
// "[name]" and "[profile name]" qualify, the prefixed section wins.
func ClassifySSO(config Sections) map[string]SSOMetadata {
	headers := make([]string, 0, len(config))
	for header := range config {
		headers = append(headers, header)
	}
	// bare headers first so prefixed ones overwrite them
	sort.SliceStable(headers, func(i, j int) bool {
		pi := strings.HasPrefix(strings.TrimSpace(headers[i]), profilePrefix)
		pj := strings.HasPrefix(strings.TrimSpace(headers[j]), profilePrefix)
		if pi != pj {
			return pj
		}
		return headers[i] < headers[j]
	})

	profiles := make(map[string]SSOMetadata)
	for _, header := range headers {
		name := StripProfilePrefix(header)
		if name == "" {
			continue
		}
		meta, ok := ssoMetadata(config[header])
		if !ok {
			continue
		}
		profiles[name] = meta
	}
	return profiles
}

func ssoMetadata(section map[string]string) (SSOMetadata, bool) {
	meta := SSOMetadata{
		StartURL:  section[keySSOStartURL],
		AccountID: section[keySSOAccountID],
		RoleName:  section[keySSORoleName],
		Region:    section[keySSORegion],
		Section:   section,
	}
	if meta.StartURL == "" || meta.AccountID == "" || meta.RoleName == "" {
		return SSOMetadata{}, false
	}
	return meta, true
}
