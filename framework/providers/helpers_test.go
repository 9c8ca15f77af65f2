package providers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/simsim/framework/bean"
)

func beanOf[T any](t *testing.T, opts ...bean.Option) *bean.Definition {
	t.Helper()
	def, err := bean.New[T](opts...)
	require.NoError(t, err)
	return def
}
