package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	t.Run("passes ordinary names through", func(t *testing.T) {
		got, err := SanitizeName("report (final).txt")
		require.NoError(t, err)
		assert.Equal(t, "report (final).txt", got)
	})

	t.Run("replaces hostile characters", func(t *testing.T) {
		got, err := SanitizeName(`a<b>c:d.txt`)
		require.NoError(t, err)
		assert.Equal(t, "a_b_c_d.txt", got)
	})

	t.Run("strips control characters", func(t *testing.T) {
		got, err := SanitizeName("no\tte\ns.txt")
		require.NoError(t, err)
		assert.Equal(t, "notes.txt", got)
	})

	t.Run("rejects empty and dot names", func(t *testing.T) {
		for _, bad := range []string{"", "   ", ".", ".."} {
			_, err := SanitizeName(bad)
			assert.Error(t, err, "name %q", bad)
		}
	})

	t.Run("rejects reserved device names", func(t *testing.T) {
		for _, bad := range []string{"CON", "nul.txt", "com1.log"} {
			_, err := SanitizeName(bad)
			assert.Error(t, err, "name %q", bad)
		}
	})

	t.Run("truncates very long names", func(t *testing.T) {
		got, err := SanitizeName(strings.Repeat("x", 400))
		require.NoError(t, err)
		assert.Len(t, []rune(got), 255)
	})
}
