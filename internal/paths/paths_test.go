package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataDir(t *testing.T) {
	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/email-archive", got)
	})

	t.Run("falls back to ~/.local/share when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "email-archive"), got)
	})
}

func TestResolveDataDir(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		cfgVal  string
		envVal  string
		wantSub string // substring the result must contain
	}{
		{
			name:    "flag wins over everything",
			flag:    "/explicit/data",
			cfgVal:  "/config/data",
			envVal:  "/env/data",
			wantSub: "/explicit/data",
		},
		{
			name:    "config value wins over env",
			cfgVal:  "/config/data",
			envVal:  "/env/data",
			wantSub: "/config/data",
		},
		{
			name:    "env wins when flag and config empty",
			envVal:  "/env/data",
			wantSub: "/env/data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.cfgVal)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}

	t.Run("falls back to XDG default", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/email-archive", got)
	})
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		got, err := ResolveConfigDir("/explicit/config")
		require.NoError(t, err)
		assert.Contains(t, got, "/explicit/config")
	})

	t.Run("env wins when flag empty", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Contains(t, got, "/env/config")
	})

	t.Run("defaults to CWD-relative directory", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		cwd, err := os.Getwd()
		require.NoError(t, err)

		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, DefaultConfigDirName), got)
	})
}

func TestResolveTokenPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvToken, "/secrets/token.json")
		got, err := ResolveTokenPath()
		require.NoError(t, err)
		assert.Equal(t, "/secrets/token.json", got)
	})

	t.Run("default under home config", func(t *testing.T) {
		t.Setenv(EnvToken, "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := ResolveTokenPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "gmail-extractor", "token.json"), got)
	})
}
