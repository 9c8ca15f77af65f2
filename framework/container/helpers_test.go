package container_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/simsim/framework/bean"
	"github.com/km-arc/simsim/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Repository interface{ ID() string }

type memoryRepo struct{ id string }

func (r *memoryRepo) ID() string { return r.id }

type serviceB struct{}

type serviceA struct{ b *serviceB }

type cycA struct{ b *cycB }
type cycB struct{ a *cycA }

type fieldCycA struct {
	B *fieldCycB `autowired:""`
}

type fieldCycB struct {
	A *fieldCycA `autowired:""`
}

type withInit struct {
	Dep    *serviceB `autowired:""`
	sawDep bool
}

func (w *withInit) PostConstruct() error {
	w.sawDep = w.Dep != nil
	return nil
}

type hidden struct {
	dep *serviceB `autowired:""`
}

type qualified struct {
	Repo Repository `autowired:"secondary"`
}

type consumer struct{ repo Repository }

type closable struct {
	events *recorder
}

func (c *closable) PreDestroy() error {
	c.events.add("PreDestroy")
	return nil
}

func (c *closable) Close() error {
	c.events.add("Close")
	return nil
}

// recorder collects events from hooks and constructors.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

var errBoom = errors.New("boom")

func register(t *testing.T, c *container.Container, defs ...*bean.Definition) {
	t.Helper()
	for _, def := range defs {
		require.NoError(t, c.Register(def))
	}
}

func def[T any](t *testing.T, opts ...bean.Option) *bean.Definition {
	t.Helper()
	d, err := bean.New[T](opts...)
	require.NoError(t, err)
	return d
}

func repos(t *testing.T) []*bean.Definition {
	t.Helper()
	return []*bean.Definition{
		def[*memoryRepo](t,
			bean.WithName("primary"),
			bean.As[Repository](),
			bean.WithConstructor(func() *memoryRepo { return &memoryRepo{id: "primary"} }),
		),
		def[*memoryRepo](t,
			bean.WithName("secondary"),
			bean.As[Repository](),
			bean.WithConstructor(func() *memoryRepo { return &memoryRepo{id: "secondary"} }),
		),
	}
}

type reentrantA struct{ peer any }

type reentrantB struct {
	A *reentrantA `autowired:""`
}
