// Package paths resolves the archive data directory, the gmex config
// directory, and the credential token location.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative config directory name; the data directory defaults to
// the XDG chain instead so archives survive across working directories.
const DefaultConfigDirName = ".gmex"

// Environment variable names for overrides.
const (
	EnvDataDir   = "EMAIL_ARCHIVE_DATA_DIR"
	EnvConfigDir = "GMEX_CONFIG_DIR"
	EnvToken     = "GOOGLE_APPLICATION_CREDENTIALS"
)

// homeDir is indirected for tests.
var homeDir = os.UserHomeDir

// DefaultDataDir returns the XDG default archive location:
// $XDG_DATA_HOME/email-archive, falling back to ~/.local/share/email-archive.
func DefaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "email-archive"), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "email-archive"), nil
}

// ResolveDataDir returns the archive directory following the precedence
// chain: flag > config.yaml value > EMAIL_ARCHIVE_DATA_DIR env >
// DefaultDataDir(). The store itself never runs this chain; it receives
// the final path.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > GMEX_CONFIG_DIR env > $(CWD)/.gmex.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveTokenPath returns the credential token location:
// GOOGLE_APPLICATION_CREDENTIALS env > ~/.config/gmail-extractor/token.json.
func ResolveTokenPath() (string, error) {
	if env := os.Getenv(EnvToken); env != "" {
		return env, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gmail-extractor", "token.json"), nil
}
