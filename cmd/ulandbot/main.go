package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ulandresort/ulandbot/internal/bot"
	"github.com/ulandresort/ulandbot/internal/catalog"
	"github.com/ulandresort/ulandbot/internal/config"
	"github.com/ulandresort/ulandbot/internal/httpapi"
	"github.com/ulandresort/ulandbot/internal/intent"
	"github.com/ulandresort/ulandbot/internal/line"
	"github.com/ulandresort/ulandbot/internal/logging"
	"github.com/ulandresort/ulandbot/internal/metrics"
	"github.com/ulandresort/ulandbot/internal/reply"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	cat, err := catalog.New(catalog.Options{
		BaseURL:      cfg.BaseURL,
		WiFiSSID:     cfg.WiFiSSID,
		WiFiPassword: cfg.WiFiPassword,
		Phone:        cfg.ContactPhone,
		CoffeePhone:  cfg.CoffeePhone,
		MapURL:       cfg.MapURL,
	})
	if err != nil {
		logger.Error("catalog", "error", err)
		os.Exit(1)
	}

	resolver := intent.NewResolver()
	if err := resolver.Validate(cat); err != nil {
		logger.Error("resolver", "error", err)
		os.Exit(1)
	}

	lineClient, err := line.NewClient(cfg.LINEChannelAccessToken, cfg.LINEAPITimeout)
	if err != nil {
		logger.Error("line client", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	botMetrics := metrics.NewBotMetrics(reg)

	dispatcher := bot.NewDispatcher(
		line.NewParser(cfg.LINEChannelSecret),
		lineClient,
		resolver,
		reply.NewComposer(cat),
		bot.WithBatchPolicy(bot.BatchPolicy(cfg.BatchFailurePolicy)),
		bot.WithLogger(logger.With("component", "bot")),
		bot.WithMetrics(botMetrics),
	)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:         logger.With("component", "http"),
		Webhook:        dispatcher.Webhook,
		StaticDir:      cfg.StaticDir,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("ulandbot: listening",
			"addr", srv.Addr,
			"base_url", cfg.BaseURL,
			"catalog_version", catalog.Version,
			"batch_policy", cfg.BatchFailurePolicy,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("ulandbot: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("ulandbot: stopped")
}
