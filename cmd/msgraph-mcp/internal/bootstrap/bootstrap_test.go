package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/cfg"
	"github.com/rusq/msgraph-mcp/internal/credstore"
)

// setCfg sets the configuration variables for the duration of the test.
func setCfg(t *testing.T, clientID, endpoint, authFile string) {
	t.Helper()
	oldID, oldEP, oldFile := cfg.ClientID, cfg.Endpoint, cfg.AuthFile
	t.Cleanup(func() { cfg.ClientID, cfg.Endpoint, cfg.AuthFile = oldID, oldEP, oldFile })
	cfg.ClientID, cfg.Endpoint, cfg.AuthFile = clientID, endpoint, authFile
}

func TestStore(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "creds.json")
		setCfg(t, cfg.DefClientID, "", name)
		s, err := Store(nil)
		require.NoError(t, err)
		assert.Equal(t, name, s.Path())
	})
	t.Run("default location", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)
		setCfg(t, cfg.DefClientID, "", "")
		s, err := Store(nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, credstore.DefaultFilename), s.Path())
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		endpoint string
		wantErr  string
	}{
		{"ok", cfg.DefClientID, cfg.DefEndpoint, ""},
		{"default endpoint", cfg.DefClientID, "", ""},
		{"no client id", "", cfg.DefEndpoint, "client ID is not set"},
		{"relative endpoint", cfg.DefClientID, "/v1.0", "must be an absolute http(s) URL"},
		{"bad scheme", cfg.DefClientID, "ftp://graph.example.com", "must be an absolute http(s) URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCfg(t, tt.clientID, tt.endpoint, filepath.Join(t.TempDir(), "creds.json"))
			svc, err := New(nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc.Store)
			assert.NotNil(t, svc.Graph)
			assert.NotNil(t, svc.Auth)
			assert.NotNil(t, svc.Status)
		})
	}
}
