package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/golang/base"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/logout"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/serve"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/status"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     *base.Command
		wantArgs []string
		wantErr  bool
	}{
		{"no args", nil, serve.CmdServe, nil, false},
		{"flags only", []string{"-transport", "http"}, serve.CmdServe, []string{"-transport", "http"}, false},
		{"status", []string{"status", "-offline"}, status.CmdStatus, []string{"-offline"}, false},
		{"logout", []string{"logout"}, logout.CmdLogout, []string{}, false},
		{"version", []string{"version"}, CmdVersion, []string{}, false},
		{"unknown", []string{"frobnicate"}, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := lookup(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRun(t *testing.T) {
	old := os.Stdout
	t.Cleanup(func() { os.Stdout = old })
	devnull, err := os.Create(filepath.Join(t.TempDir(), "stdout"))
	require.NoError(t, err)
	t.Cleanup(func() { devnull.Close() })
	os.Stdout = devnull

	t.Run("version", func(t *testing.T) {
		assert.NoError(t, run(context.Background(), []string{"version"}))
	})
	t.Run("help", func(t *testing.T) {
		assert.NoError(t, run(context.Background(), []string{"help", "login"}))
	})
	t.Run("unknown help topic", func(t *testing.T) {
		assert.Error(t, run(context.Background(), []string{"help", "nope"}))
	})
	t.Run("unknown command", func(t *testing.T) {
		err := run(context.Background(), []string{"nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})
}

func TestLoadSecrets(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(f, []byte("MSGRAPH_TEST_SECRET=42\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MSGRAPH_TEST_SECRET") })

	loadSecrets([]string{filepath.Join(dir, "missing.txt"), f})
	assert.Equal(t, "42", os.Getenv("MSGRAPH_TEST_SECRET"))
}
