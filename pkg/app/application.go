package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"registrar/pkg/config"
	"registrar/pkg/contracts"
	"registrar/pkg/middleware"
)

type Application struct {
	cfg    *config.Config
	server *http.Server
}

// NewApplication mounts health on a router with only Recovery and Logging,
// and the API behind the full middleware chain. CORS wraps both.
func NewApplication(cfg *config.Config, appHandler contracts.Handler, healthHandler contracts.Handler) *Application {
	a := &Application{cfg: cfg}

	mux := http.NewServeMux()
	health := a.healthHandler(healthHandler)
	mux.Handle("/health", health)
	mux.Handle("/ready", health)
	mux.Handle("/", a.appHandler(appHandler))

	a.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.CORS(cfg.CORSAllowedOrigins, cfg.Log)(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	cfg.Log.Info("HTTP server configured", "port", cfg.Port)
	return a
}

func (a *Application) healthHandler(h contracts.Handler) http.Handler {
	router := httprouter.New()
	h.RegisterRoutes(router)

	var handler http.Handler = router
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
	return handler
}

func (a *Application) appHandler(h contracts.Handler) http.Handler {
	router := httprouter.New()
	h.RegisterRoutes(router)

	var handler http.Handler = router
	handler = middleware.RequestTimeout(a.cfg.RequestTimeout)(handler)
	handler = middleware.ContentTypeValidation(a.cfg.Log)(handler)
	handler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(handler)
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
	return handler
}

// Handler exposes the fully wrapped handler, for tests.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests. It returns
// an error only when the server itself fails.
func (a *Application) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		return a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() error {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		return a.server.Close()
	}

	a.cfg.Log.Info("Server stopped gracefully")
	return nil
}
