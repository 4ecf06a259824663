package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/ini.v1"
)

// ReadSections parses an INI file into its sections. A missing file is not an
// error and yields no sections; malformed content is a *ConfigParseError.
func ReadSections(path string) (Sections, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Sections{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, data)
	if err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}

	sections := make(Sections, len(f.Sections()))
	for _, sec := range f.Sections() {
		// the parser always creates an implicit DEFAULT section for keys above
		// the first header
		if sec.Name() == ini.DefaultSection {
			continue
		}
		sections[sec.Name()] = sec.KeysHash()
	}
	return sections, nil
}
