package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("BOARD", "\033[36m", &buf)
	require.NoError(t, err)

	t.Run("Levels", func(t *testing.T) {
		buf.Reset()
		l.Info("created")
		l.Warning("slow")
		l.Error("failed")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "[BOARD]")
		assert.Contains(t, lines[0], "[INFO]")
		assert.True(t, strings.HasSuffix(lines[0], "created"))
		assert.Contains(t, lines[1], "[WARNING]")
		assert.Contains(t, lines[2], "[ERROR]")
	})

	t.Run("Nil writer", func(t *testing.T) {
		_, err := New("X", "", nil)
		assert.ErrorIs(t, err, ErrNilWriter)
	})
}
