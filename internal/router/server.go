package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/safetap/internal/auth"
	"github.com/wellywell/safetap/internal/compress"
	"github.com/wellywell/safetap/internal/config"
	"github.com/wellywell/safetap/internal/handlers"
	logging "github.com/wellywell/safetap/internal/middleware"
)

const (
	compressLevel   = 5
	shutdownTimeout = 10 * time.Second
)

type Middleware interface {
	Handle(h http.Handler) http.Handler
}

type Router struct {
	address string
	router  *chi.Mux
}

func NewRouter(conf *config.ServerConfig, h *handlers.HandlerSet, middlewares ...Middleware) *Router {

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger{}.Handle)
	r.Use(middleware.Recoverer)
	r.Use(compress.RequestUngzipper{}.Handle)
	r.Use(middleware.Compress(compressLevel, "application/json", "text/plain"))
	for _, m := range middlewares {
		r.Use(m.Handle)
	}

	r.Get("/api/health", h.HandleHealth)

	r.Post("/api/orders", h.HandlePostOrder)
	r.Get("/api/orders/{number}", h.HandleGetPublicOrder)
	r.Post("/api/orders/{number}/payments", h.HandlePostPayment)

	r.Post("/api/admin/login", h.HandleLogin)

	authMiddleware := &auth.AuthenticateMiddleware{Secret: conf.Secret}

	r.Group(func(r chi.Router) {

		r.Use(authMiddleware.Handle)
		r.Get("/api/admin/orders", h.HandleGetOrders)
		r.Get("/api/admin/orders/consistency", h.HandleGetConsistency)
		r.Get("/api/admin/orders/{id}", h.HandleGetOrder)
		r.Post("/api/admin/orders/{id}/transition", h.HandlePostTransition)
		r.Post("/api/admin/orders/{id}/repair", h.HandlePostRepair)
	})

	return &Router{router: r, address: conf.RunAddress}
}

func (r *Router) Handler() http.Handler {
	return r.router
}

// ListenAndServe serves until ctx is cancelled and then shuts the server down gracefully.
func (r *Router) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              r.address,
		Handler:           r.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", r.address)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
