package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "finplan/internal/http"
	"finplan/internal/log"
	"finplan/internal/planning"
	"finplan/internal/services"
	memory "finplan/internal/store/memory"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planning API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	log.SetDefault(logger)

	registry := prometheus.NewRegistry()
	thresholds := planning.Thresholds{
		LowSavingsRate:     decimal.NewFromFloat(cfg.LowSavingsRate),
		HealthySavingsRate: decimal.NewFromFloat(cfg.HealthySavingsRate),
	}
	analysis := services.NewAnalysisService(thresholds, cfg.EmergencyFundMonths, services.NewMetrics(registry), logger)

	srv := apphttp.NewServer(":"+cfg.Port, analysis, memory.New(), apphttp.Options{
		DefaultHorizonMonths: cfg.DefaultHorizonMonths,
		DemoSeed:             cfg.DemoSeed,
		Logger:               logger,
		Registry:             registry,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting finplan server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
