package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/km-arc/simsim/app"
	"github.com/km-arc/simsim/framework/config"
	framework "github.com/km-arc/simsim/framework/app"
)

func main() {
	cfg := config.Load() // loads .env automatically

	application, err := framework.New(cfg,
		framework.WithProviders(&app.AppServiceProvider{}),
		framework.WithCatalog(app.Catalog()),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("startup failed: %v", err))
		os.Exit(1)
	}
	logger := application.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           application.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	banner(cfg, len(application.Container().Beans()))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	if err := application.Close(); err != nil {
		logger.Warn("application close", zap.Error(err))
	}
}

func banner(cfg *config.Config, beans int) {
	bold := color.New(color.FgGreen, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("%s %s\n", bold(cfg.App.Name), gray("["+cfg.App.Env+"]"))
	fmt.Printf("  beans      %d\n", beans)
	fmt.Printf("  actuator   %s\n", color.CyanString("http://localhost:%s/beans", cfg.HTTP.Port))
	fmt.Printf("  metrics    %s\n", color.CyanString("http://localhost:%s/metrics", cfg.HTTP.Port))
}
