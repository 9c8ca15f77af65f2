package container

import (
	"time"

	"github.com/km-arc/simsim/framework/bean"
)

// Observer receives bean lifecycle events. Implementations must be safe for
// concurrent use.
type Observer interface {
	// BeanCreated is called after a bean passed every creation step.
	BeanCreated(name string, scope bean.Scope, elapsed time.Duration)

	// BeanFailed is called when any creation step of a bean failed.
	BeanFailed(name string, err error)

	// BeanDestroyed is called once per singleton on Close; err is the first
	// pre-destroy failure, if any.
	BeanDestroyed(name string, err error)
}

type nopObserver struct{}

func (nopObserver) BeanCreated(string, bean.Scope, time.Duration) {}
func (nopObserver) BeanFailed(string, error)                      {}
func (nopObserver) BeanDestroyed(string, error)                   {}
