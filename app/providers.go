package app

import (
	"go.uber.org/zap"

	"github.com/km-arc/simsim/framework/bean"
	"github.com/km-arc/simsim/framework/container"
	"github.com/km-arc/simsim/framework/manifest"
)

// AppServiceProvider registers the inventory components.
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(c *container.Container) error {
	return container.Components(
		bean.MustNew[SystemClock](
			bean.WithName("clock"),
			bean.WithConstructor(func() SystemClock { return SystemClock{} }),
			bean.As[Clock](),
		),
		bean.MustNew[*StockRepository](bean.WithConstructor(NewStockRepository)),
		bean.MustNew[*AuditLog](),
		bean.MustNew[*InventoryService](bean.WithAutowiredConstructor(NewInventoryService)),
	).Register(c)
}

// Boot logs the stock the application starts with.
func (p *AppServiceProvider) Boot(c *container.Container) error {
	svc, err := container.Get[*InventoryService](c)
	if err != nil {
		return err
	}
	logger, err := container.GetNamed[*zap.Logger](c, "logger")
	if err != nil {
		return err
	}
	logger.Info("inventory ready", zap.Any("stock", svc.Stock()))
	return nil
}

// Catalog lists the components a bean manifest may declare.
func Catalog() manifest.Catalog {
	return manifest.Catalog{
		"inventory.report": manifest.Of[*StockReport](bean.WithScope("prototype")),
	}
}
