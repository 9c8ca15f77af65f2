package container

import (
	"github.com/km-arc/simsim/framework/bean"
)

// injectFields resolves and assigns every autowired field of instance. All
// fields are set before any post-construct hook runs.
func (c *Container) injectFields(res *resolution, def *bean.Definition, instance any) error {
	for _, f := range def.Fields() {
		dep, err := c.dependency(res, def.Name(), bean.Dependency{
			Type:      f.Type,
			Qualifier: f.Qualifier,
			Field:     f.Field,
		})
		if err != nil {
			return &FieldError{Bean: def.Name(), Field: f.Field, Type: f.Type, Err: err}
		}
		if err := f.Set(instance, dep); err != nil {
			return &FieldError{Bean: def.Name(), Field: f.Field, Type: f.Type, Err: err}
		}
	}
	return nil
}
