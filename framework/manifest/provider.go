package manifest

import (
	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/container"
)

// Provider registers the beans of a manifest file.
type Provider struct {
	container.BaseProvider

	path    string
	catalog Catalog
	logger  *zap.Logger
}

// NewProvider returns a provider loading path against catalog on Register.
func NewProvider(path string, catalog Catalog, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{path: path, catalog: catalog, logger: logger}
}

func (p *Provider) Register(c *container.Container) error {
	m, err := Load(p.path)
	if err != nil {
		return err
	}
	defs, err := m.Definitions(p.catalog)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := c.Register(def); err != nil {
			return err
		}
	}

	p.logger.Info("bean manifest loaded",
		zap.String("file", p.path),
		zap.Int("beans", len(defs)),
	)
	return nil
}
