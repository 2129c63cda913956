package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/hgshop/internal/config"
	"github.com/nikolayk812/hgshop/internal/httpserver/middleware"
	"github.com/nikolayk812/hgshop/internal/view"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const readHeaderTimeout = 5 * time.Second

// Server represents the storefront HTTP server.
type Server struct {
	router        *chi.Mux
	config        *config.ServerConfig
	handler       *ShopHandler
	metrics       http.Handler
	meterProvider metric.MeterProvider
	logger        *zap.Logger
	srv           *http.Server
}

// NewServer wires the middleware chain and routes. A nil metrics handler
// leaves /metrics unmounted.
func NewServer(
	cfg *config.ServerConfig,
	handler *ShopHandler,
	metrics http.Handler,
	meterProvider metric.MeterProvider,
	logger *zap.Logger,
) *Server {
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:        chi.NewRouter(),
		config:        cfg,
		handler:       handler,
		metrics:       metrics,
		meterProvider: meterProvider,
		logger:        logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Session)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handler.Index)
	s.router.Get("/products/{id}", s.handler.QuickView)

	s.router.Route("/cart", func(r chi.Router) {
		r.Post("/items", s.handler.AddItem)
		r.Post("/lines/{key}/{action}", s.handler.LineAction)
	})

	s.router.Post("/quote", s.handler.SubmitQuote)
	s.router.Get("/api/cart", s.handler.Cart)

	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(view.Assets())))

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.metrics != nil {
		s.router.Get("/metrics", s.metrics.ServeHTTP)
	}
}

// Handler returns the router wrapped with otelhttp.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.meterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)
}

// Start blocks until the server stops. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("address", s.srv.Addr))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
