package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/bean"
)

// postConstruct runs the initialization hooks in order and stops at the
// first failure.
func (c *Container) postConstruct(def *bean.Definition, instance any) error {
	for _, hook := range def.PostConstruct() {
		if err := invokeHook(hook, instance); err != nil {
			return fmt.Errorf("%s: %w", hook.Name, err)
		}
	}
	return nil
}

// destroy runs every pre-destroy hook of s and returns how many failed.
// Failures are reported, never propagated.
func (c *Container) destroy(s *singleton) int {
	if s == nil {
		return 0
	}
	name := s.def.Name()

	failed := 0
	var first error
	for _, hook := range s.def.PreDestroy() {
		err := invokeHook(hook, s.instance)
		if err == nil {
			continue
		}
		failed++
		err = fmt.Errorf("destroy bean %q: %s: %w", name, hook.Name, err)
		if first == nil {
			first = err
		}
		c.logger.Error("pre-destroy hook failed",
			zap.String("bean", name),
			zap.String("hook", hook.Name),
			zap.Error(err),
		)
		if c.onDestroyError != nil {
			c.onDestroyError(name, err)
		}
	}

	c.observer.BeanDestroyed(name, first)
	return failed
}

func invokeHook(hook bean.Hook, instance any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return hook.Invoke(instance)
}
