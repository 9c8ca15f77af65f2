// Package bean describes components managed by the container.
//
// A Definition is built once per component type and carries everything the
// container needs to create, wire and tear down instances: the selected
// constructor, the autowired field injection points and the lifecycle hooks.
// Nothing is re-derived at creation time.
//
// # Constructors
//
// Go has no constructors, so a constructor is a function returning the
// component:
//
//	bean.New[*OrderService](bean.WithAutowiredConstructor(NewOrderService))
//
// The autowired constructor's parameters are resolved by type. Without an
// autowired constructor, a parameterless one is used; a pointer-to-struct type
// with no constructor at all is allocated with new.
//
// # Fields
//
// Struct fields tagged `autowired:""` are injected after construction. A tag
// value names a specific bean:
//
//	type OrderService struct {
//	    repo   Repository `autowired:""`
//	    mailer Mailer     `autowired:"smtpMailer"`
//	}
//
// # Lifecycle
//
// PostConstruct runs after injection, PreDestroy (and Close, for io.Closer)
// when the container shuts down. Extra hooks are declared with
// WithPostConstruct and WithPreDestroy.
package bean
