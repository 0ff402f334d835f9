package cfg

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBaseFlags(t *testing.T) {
	tests := []struct {
		name    string
		mask    FlagMask
		present []string
		absent  []string
	}{
		{
			name:    "default",
			mask:    DefaultFlags,
			present: []string{"trace", "log", "log-json", "v", "config", "client-id", "tenant", "auth-file", "endpoint", "rate", "burst"},
		},
		{
			name:    "omit auth",
			mask:    OmitAuthFlags,
			present: []string{"v", "config", "endpoint"},
			absent:  []string{"client-id", "tenant", "auth-file"},
		},
		{
			name:    "omit all",
			mask:    OmitAll,
			present: []string{"trace", "log", "log-json", "v"},
			absent:  []string{"config", "client-id", "endpoint", "rate"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			SetBaseFlags(fs, tt.mask)
			for _, name := range tt.present {
				assert.NotNil(t, fs.Lookup(name), name)
			}
			for _, name := range tt.absent {
				assert.Nil(t, fs.Lookup(name), name)
			}
		})
	}
}

func TestSetBaseFlags_twice(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	assert.NotPanics(t, func() {
		SetBaseFlags(fs, DefaultFlags)
		SetBaseFlags(fs, DefaultFlags)
	})
}

func TestSetBaseFlags_env(t *testing.T) {
	t.Setenv("MSGRAPH_CLIENT_ID", "env-client")
	t.Setenv("MSGRAPH_RATE", "60")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	SetBaseFlags(fs, DefaultFlags)
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, "env-client", ClientID)
	assert.Equal(t, 60, RateLimit)
	assert.Equal(t, DefTenantID, TenantID)
	assert.Equal(t, DefBurst, RateBurst)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "msgraph-mcp.toml")
	require.NoError(t, os.WriteFile(name, []byte(body), 0o600))
	return name
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("MSGRAPH_CLIENT_ID", "")
	t.Run("applies to unset flags", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		SetBaseFlags(fs, DefaultFlags)
		var transport string
		fs.StringVar(&transport, "transport", "stdio", "")
		require.NoError(t, fs.Parse([]string{"-tenant", "contoso.onmicrosoft.com"}))

		name := writeConfig(t, `
client_id = "file-client"
tenant_id = "file-tenant"
rate = 120
log_json = true
transport = "http"
`)
		require.NoError(t, LoadConfig(fs, name))
		assert.Equal(t, "file-client", ClientID)
		assert.Equal(t, "contoso.onmicrosoft.com", TenantID, "explicit flag wins")
		assert.Equal(t, 120, RateLimit)
		assert.True(t, JSONHandler)
		assert.Equal(t, "http", transport)
	})
	t.Run("keys of other commands are ignored", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		SetBaseFlags(fs, DefaultFlags)
		require.NoError(t, fs.Parse(nil))
		require.NoError(t, LoadConfig(fs, writeConfig(t, `listen = "127.0.0.1:9000"`)))
	})
	t.Run("unknown key", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		SetBaseFlags(fs, DefaultFlags)
		err := LoadConfig(fs, writeConfig(t, `colour = "blue"`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown key "colour"`)
	})
	t.Run("bad value", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		SetBaseFlags(fs, DefaultFlags)
		err := LoadConfig(fs, writeConfig(t, `rate = "fast"`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate")
	})
	t.Run("syntax error", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		err := LoadConfig(fs, writeConfig(t, `client_id = `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})
	t.Run("missing file", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		err := LoadConfig(fs, filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("no file", func(t *testing.T) {
		assert.NoError(t, LoadConfig(flag.NewFlagSet("test", flag.ContinueOnError), ""))
	})
}

func TestSetDebugLevel(t *testing.T) {
	t.Cleanup(func() { logLevel.Set(slog.LevelInfo) })
	assert.Equal(t, slog.LevelInfo, LogLevel().Level())
	SetDebugLevel()
	assert.Equal(t, slog.LevelDebug, LogLevel().Level())
}
