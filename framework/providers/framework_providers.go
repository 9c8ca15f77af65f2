package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/bean"
	"github.com/km-arc/simsim/framework/config"
	"github.com/km-arc/simsim/framework/container"
	"github.com/km-arc/simsim/framework/metrics"
)

// ── FrameworkServiceProvider ──────────────────────────────────────────────────

// FrameworkServiceProvider registers the framework's own objects as instance
// beans, so components can depend on them like on any other bean.
//
// Registered beans:
//   - "config"   → *config.Config
//   - "logger"   → *zap.Logger
//   - "metrics"  → *metrics.Observer (only when set)
type FrameworkServiceProvider struct {
	container.BaseProvider

	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Observer
}

func (p *FrameworkServiceProvider) Register(c *container.Container) error {
	defs := make([]*bean.Definition, 0, 3)

	cfg, err := bean.Instance(p.Config, bean.WithName("config"))
	if err != nil {
		return err
	}
	defs = append(defs, cfg)

	logger, err := bean.Instance(p.Logger, bean.WithName("logger"))
	if err != nil {
		return err
	}
	defs = append(defs, logger)

	if p.Metrics != nil {
		m, err := bean.Instance(p.Metrics, bean.WithName("metrics"), bean.As[container.Observer]())
		if err != nil {
			return err
		}
		defs = append(defs, m)
	}

	for _, def := range defs {
		if err := c.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Boot logs the bean count once every provider has registered.
func (p *FrameworkServiceProvider) Boot(c *container.Container) error {
	p.Logger.Info("providers booted",
		zap.String("app", p.Config.App.Name),
		zap.String("env", p.Config.App.Env),
		zap.Int("beans", c.Registry().Len()),
	)
	return nil
}
