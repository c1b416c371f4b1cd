package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "GoldPulse/internal/domain/repository"
	"GoldPulse/internal/usecase"
	"GoldPulse/pkg/config"
	xhttp "GoldPulse/pkg/http"
	"GoldPulse/pkg/http/middleware"
	pkgkafka "GoldPulse/pkg/kafka"
	applogger "GoldPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle: the analysis
// scheduler, the optional live quote stream, the Kafka archive
// consumer and the HTTP API.
type App struct {
	cfg        *config.Config
	runner     *usecase.Runner
	handler    xhttp.Handler
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	stream     drepo.QuoteStream
	store      drepo.ReportStore
	publisher  drepo.Publisher
	metrics    drepo.Metrics
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	runner *usecase.Runner,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	stream drepo.QuoteStream,
	store drepo.ReportStore,
	publisher drepo.Publisher,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		runner:    runner,
		handler:   handler,
		consumer:  consumer,
		kh:        kh,
		stream:    stream,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
	if a.cfg.Metrics.Enabled {
		a.httpServer.Use(middleware.Metrics(a.logger, time.Second))
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if a.stream != nil {
		go a.collectQuotes(ctx)
	}

	go a.scheduleRuns(ctx)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// scheduleRuns fires the analysis pipeline on the configured interval.
// The first run starts immediately.
func (a *App) scheduleRuns(ctx context.Context) {
	interval := a.cfg.Schedule.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	run := func() {
		err := a.runner.RunAll(ctx, a.cfg.Instruments.Codes)
		if err != nil && !errors.Is(err, usecase.ErrRunInProgress) && !errors.Is(err, context.Canceled) {
			a.logger.Error("scheduled run failed", applogger.Error(err))
		}
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

// collectQuotes reads the live stream and keeps the last price gauges
// fresh between scheduled runs.
func (a *App) collectQuotes(ctx context.Context) {
	if err := a.stream.Connect(ctx); err != nil {
		a.logger.Warn("quote stream connect failed", applogger.Error(err))
		return
	}
	if err := a.stream.Subscribe(ctx, a.cfg.Instruments.Codes); err != nil {
		a.logger.Warn("quote stream subscribe failed", applogger.Error(err))
		return
	}
	a.logger.Info("quote stream connected", applogger.Strings("codes", a.cfg.Instruments.Codes))

	quotes, errs := a.stream.Read(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case q, ok := <-quotes:
			if !ok {
				return
			}
			a.metrics.RecordLastPrice(q.Code, q.Price)
		case err, ok := <-errs:
			if !ok {
				return
			}
			a.logger.Warn("quote stream error, reconnecting", applogger.Error(err))
			if err := a.stream.Reconnect(ctx); err != nil {
				a.logger.Error("quote stream reconnect failed", applogger.Error(err))
				return
			}
			quotes, errs = a.stream.Read(ctx)
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.logger.Warn("quote stream close error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("report store close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
