package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 200; i++ {
		pwd, err := Generate()
		require.NoError(t, err)
		require.Len(t, pwd, Length)
		for _, r := range pwd {
			require.True(t, strings.ContainsRune(Charset, r), "unexpected rune %q", r)
		}
		require.True(t, strings.ContainsAny(pwd, lower))
		require.True(t, strings.ContainsAny(pwd, upper))
		require.True(t, strings.ContainsAny(pwd, digits))
		require.True(t, strings.ContainsAny(pwd, specials))
	}
}
