package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/hgshop/internal/config"
	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/nikolayk812/hgshop/internal/httpserver"
	"github.com/nikolayk812/hgshop/internal/port"
	"github.com/nikolayk812/hgshop/internal/quote"
	"github.com/nikolayk812/hgshop/internal/repository"
	"github.com/nikolayk812/hgshop/internal/repository/memory"
	"github.com/nikolayk812/hgshop/internal/repository/sqlite"
	"github.com/nikolayk812/hgshop/internal/telemetry"
	"github.com/nikolayk812/hgshop/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("cfg.Validate: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "listen host")
	flags.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "listen port")
	flags.StringVar(&cfg.Storage.Driver, "storage", cfg.Storage.Driver, "cart storage (memory, sqlite, postgres)")
	flags.StringVar(&cfg.Storage.SQLitePath, "sqlite-path", cfg.Storage.SQLitePath, "sqlite database file")
	flags.StringVar(&cfg.Storage.DatabaseURL, "database-url", cfg.Storage.DatabaseURL, "postgres connection string")
	flags.StringVar(&cfg.Quote.Delivery, "quote-delivery", cfg.Quote.Delivery, "quote delivery (mailto, amqp)")
	flags.StringVar(&cfg.Quote.To, "quote-to", cfg.Quote.To, "quote destination address")
	flags.StringVar(&cfg.Shop.Locale, "locale", cfg.Shop.Locale, "price formatting locale")
	flags.StringVar(&cfg.Shop.ToastDuration, "toast-duration", cfg.Shop.ToastDuration, "toast display time, e.g. 1.6s")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warn("close failed", zap.Error(err))
			}
		}
	}()

	telem, err := telemetry.New(ctx, cfg.OTLP.ServiceName, cfg.OTLP.Endpoint, logger)
	if err != nil {
		return fmt.Errorf("telemetry.New: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	instruments, err := telemetry.NewInstruments(telem.Meter())
	if err != nil {
		return fmt.Errorf("telemetry.NewInstruments: %w", err)
	}

	shopCatalog, err := loadCatalog(cfg.Shop.CatalogPath)
	if err != nil {
		return err
	}

	tag, err := cfg.Shop.Tag()
	if err != nil {
		return err
	}

	storage, closer, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	delivery, closer, err := openDelivery(cfg.Quote)
	if err != nil {
		return err
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	toast, err := cfg.Shop.Toast()
	if err != nil {
		return err
	}

	renderer, err := view.NewRenderer(toast)
	if err != nil {
		return fmt.Errorf("view.NewRenderer: %w", err)
	}

	handler := httpserver.NewShopHandler(httpserver.Deps{
		Catalog:     shopCatalog,
		Storage:     storage,
		Delivery:    delivery,
		QuoteTo:     cfg.Quote.To,
		Formatter:   domain.NewMoneyFormatter(tag),
		Renderer:    renderer,
		Instruments: instruments,
		Tracer:      telem.Tracer(),
		Logger:      logger,
	})

	server := httpserver.NewServer(&cfg.Server, handler, telem.MetricsHandler(), telem.MeterProvider, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("storefront started",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("quote_delivery", cfg.Quote.Delivery),
		zap.String("currency", shopCatalog.Currency().String()),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	return <-errCh
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openStorage(ctx context.Context, cfg config.StorageConfig) (port.CartStorage, io.Closer, error) {
	switch cfg.Driver {
	case config.StorageSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite.Open: %w", err)
		}
		return s, s, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		return repository.NewCart(pool), closerFunc(func() error {
			pool.Close()
			return nil
		}), nil

	default:
		return memory.NewCartStorage(), nil, nil
	}
}

func openDelivery(cfg config.QuoteConfig) (port.QuoteDelivery, io.Closer, error) {
	if cfg.Delivery != config.DeliveryAMQP {
		return quote.MailtoDelivery{}, nil, nil
	}

	delivery, conn, err := quote.DialAMQP(cfg.AMQPURI, cfg.AMQPQueue)
	if err != nil {
		return nil, nil, fmt.Errorf("quote.DialAMQP: %w", err)
	}
	return delivery, conn, nil
}
