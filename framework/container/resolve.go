package container

import (
	"fmt"

	"github.com/km-arc/simsim/framework/bean"
)

// ── Generics helpers ──────────────────────────────────────────────────────────

// Get resolves the only bean indexed under T.
//
//	svc, err := container.Get[*OrderService](c)
func Get[T any](c *Container) (T, error) {
	var zero T
	inst, err := c.BeanOf(bean.TypeOf[T]())
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("container: Get[%s]: resolved %T", bean.TypeOf[T](), inst)
	}
	return typed, nil
}

// GetNamed resolves the bean registered under name and asserts it to T.
//
//	repo, err := container.GetNamed[Repository](c, "postgresRepository")
func GetNamed[T any](c *Container, name string) (T, error) {
	var zero T
	inst, err := c.Bean(name)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("container: GetNamed[%s]: bean %q is %T", bean.TypeOf[T](), name, inst)
	}
	return typed, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](c *Container) T {
	typed, err := Get[T](c)
	if err != nil {
		panic(err)
	}
	return typed
}
