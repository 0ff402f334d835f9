package osext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_isTerminal(t *testing.T) {
	t.Run("regular file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
		require.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		assert.False(t, isTerminal(f))
	})
	t.Run("nil", func(t *testing.T) {
		assert.False(t, isTerminal(nil))
	})
}

func TestCanPrompt_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.False(t, CanPrompt())
}
