package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Name() string
}

type impl struct{}

func (i *impl) Name() string { return "impl" }

func TestCheck(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		var p provider = &impl{}
		require.NoError(t, Check(Dep("provider", p), Dep("limit", 5)))
	})
	t.Run("lists every missing dependency", func(t *testing.T) {
		var empty provider
		var typedNil *impl
		err := Check(Dep("first", empty), Dep("second", typedNil), Dep("ok", "value"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "first, second")
		require.NotContains(t, err.Error(), "ok")
	})
}
