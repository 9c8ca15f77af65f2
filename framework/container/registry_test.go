package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/simsim/framework/bean"
	"github.com/km-arc/simsim/framework/container"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := container.NewRegistry()

	replaced, err := r.Register(def[*serviceB](t))
	require.NoError(t, err)
	assert.False(t, replaced)

	got, err := r.Definition("serviceB")
	require.NoError(t, err)
	assert.Equal(t, bean.TypeOf[*serviceB](), got.Type())

	byType, err := r.DefinitionOf(bean.TypeOf[*serviceB]())
	require.NoError(t, err)
	assert.Same(t, got, byType)

	assert.True(t, r.Has("serviceB"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_NotFound(t *testing.T) {
	r := container.NewRegistry()

	_, err := r.Definition("missing")
	assert.ErrorIs(t, err, container.ErrDefinitionNotFound)

	_, err = r.DefinitionOf(bean.TypeOf[*serviceB]())
	assert.ErrorIs(t, err, container.ErrNoBeanOfType)
}

func TestRegistry_AmbiguousType(t *testing.T) {
	r := container.NewRegistry()
	for _, d := range repos(t) {
		_, err := r.Register(d)
		require.NoError(t, err)
	}

	_, err := r.DefinitionOf(bean.TypeOf[*memoryRepo]())
	assert.ErrorIs(t, err, container.ErrAmbiguousType)

	_, err = r.DefinitionOf(bean.TypeOf[Repository]())
	assert.ErrorIs(t, err, container.ErrAmbiguousType)

	assert.Equal(t, []string{"primary", "secondary"}, r.NamesOf(bean.TypeOf[Repository]()))
}

func TestRegistry_ReplaceKeepsOrderAndReindexes(t *testing.T) {
	r := container.NewRegistry()

	for _, d := range []*bean.Definition{
		def[*serviceB](t, bean.WithName("first")),
		def[*serviceB](t, bean.WithName("second")),
	} {
		_, err := r.Register(d)
		require.NoError(t, err)
	}

	// Same name, different type: the old type bucket must be emptied.
	replaced, err := r.Register(def[*memoryRepo](t, bean.WithName("first")))
	require.NoError(t, err)
	assert.True(t, replaced)

	names := make([]string, 0, 2)
	for _, d := range r.Definitions() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"first", "second"}, names)

	assert.Equal(t, []string{"second"}, r.NamesOf(bean.TypeOf[*serviceB]()))
	assert.Equal(t, []string{"first"}, r.NamesOf(bean.TypeOf[*memoryRepo]()))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_NilDefinition(t *testing.T) {
	_, err := container.NewRegistry().Register(nil)
	assert.ErrorIs(t, err, container.ErrInvalidDefinition)
}
