package internal

import (
	"slices"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
)

const profilePrefix = "profile "

// StripProfilePrefix returns the canonical profile name for a config file
// section header. Leading "profile " prefixes are removed until none is left
// and the remainder is trimmed, so "profile " alone yields "".
func StripProfilePrefix(header string) string {
	name := strings.TrimLeftFunc(header, unicode.IsSpace)
	for strings.HasPrefix(name, profilePrefix) {
		name = strings.TrimLeftFunc(strings.TrimPrefix(name, profilePrefix), unicode.IsSpace)
	}
	return strings.TrimSpace(name)
}

// BuildCatalog merges the section headers of both files into one set of
// profile names. Credentials headers are used as-is; config headers lose
// their "profile " prefix.
func BuildCatalog(credentials, config Sections) mapset.Set[string] {
	catalog := mapset.NewSet[string]()

	for header := range credentials {
		if name := strings.TrimSpace(header); name != "" {
			catalog.Add(name)
		}
	}
	for header := range config {
		if name := StripProfilePrefix(header); name != "" {
			catalog.Add(name)
		}
	}

	return catalog
}

// Choices orders the catalog for the picker, flagging the current profile.
// Entries are sorted by their lower-cased label.
func Choices(catalog mapset.Set[string], current string) []Choice {
	choices := make([]Choice, 0, catalog.Cardinality())
	for _, name := range catalog.ToSlice() {
		c := Choice{Value: name, Label: name}
		if name == current {
			c.Current = true
			c.Label = name + " (current)"
		}
		choices = append(choices, c)
	}

	slices.SortFunc(choices, func(a, b Choice) int {
		if c := strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)); c != 0 {
			return c
		}
		return strings.Compare(a.Label, b.Label)
	})
	return choices
}
