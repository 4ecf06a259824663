package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/ssocreds"
)

const (
	// DefaultProfile is reported when no profile has been selected yet
	DefaultProfile = "default"
	// DefaultLoginCommand is run with the profile name appended
	DefaultLoginCommand = "aws sso login --profile"

	markerFileName   = "awsctx"
	settingsFileName = "awsctx.toml"
)

// Config is resolved once at startup and handed to every component.
type Config struct {
	CredentialsFile string
	ConfigFile      string
	MarkerFile      string
	SSOCacheDir     string
	SettingsFile    string

	Shell        string
	LoginCommand string
	Debug        bool
}

// Settings is the optional ~/.aws/awsctx.toml file.
type Settings struct {
	Shell        string `toml:"shell"`
	LoginCommand string `toml:"login_command"`
	Debug        bool   `toml:"debug"`
}

// DefaultConfig returns the conventional locations under ~/.aws.
func DefaultConfig() Config {
	configFile := config.DefaultSharedConfigFilename()
	awsDir := filepath.Dir(configFile)

	cacheDir := filepath.Join(awsDir, "sso", "cache")
	if p, err := ssocreds.StandardCachedTokenFilepath("awsctx"); err == nil {
		cacheDir = filepath.Dir(p)
	}

	return Config{
		CredentialsFile: config.DefaultSharedCredentialsFilename(),
		ConfigFile:      configFile,
		MarkerFile:      filepath.Join(awsDir, markerFileName),
		SSOCacheDir:     cacheDir,
		SettingsFile:    filepath.Join(awsDir, settingsFileName),
		Shell:           defaultShell(runtime.GOOS),
		LoginCommand:    DefaultLoginCommand,
	}
}

// defaultShell is used when neither $SHELL nor the settings file name one.
func defaultShell(goos string) string {
	if goos == "windows" {
		return "powershell"
	}
	return "/bin/sh"
}

// LoadConfig layers the settings file and then the environment over the defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv("AWSCTX_SETTINGS_FILE"); v != "" {
		cfg.SettingsFile = v
	}

	settings, err := LoadSettings(cfg.SettingsFile)
	if err != nil {
		return cfg, err
	}
	if settings.Shell != "" {
		cfg.Shell = settings.Shell
	}
	if settings.LoginCommand != "" {
		cfg.LoginCommand = settings.LoginCommand
	}
	cfg.Debug = settings.Debug

	if v := getenv("AWS_SHARED_CREDENTIALS_FILE"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := getenv("AWS_CONFIG_FILE"); v != "" {
		cfg.ConfigFile = v
	}
	if v := getenv("AWSCTX_FILE"); v != "" {
		cfg.MarkerFile = v
	}
	if v := getenv("AWSCTX_SSO_CACHE_DIR"); v != "" {
		cfg.SSOCacheDir = v
	}
	if v := getenv("SHELL"); v != "" && settings.Shell == "" {
		cfg.Shell = v
	}
	if debugEnabled(getenv) {
		cfg.Debug = true
	}

	return cfg, nil
}

// LoadSettings decodes the settings file. A missing file yields zero settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	return s, nil
}

func debugEnabled(getenv func(string) string) bool {
	switch strings.ToLower(getenv("AWSCTX_DEBUG")) {
	case "1", "true", "yes":
		return true
	}
	for _, name := range strings.Split(getenv("DEBUG"), ",") {
		if strings.TrimSpace(name) == "awsctx" || strings.TrimSpace(name) == "*" {
			return true
		}
	}
	return false
}
