// Package server assembles the SharedShop HTTP surface: the Connect
// services plus health and metrics endpoints on one chi router.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MacDuki/sharedShop/internal/auth"
	"github.com/MacDuki/sharedShop/internal/middleware"
	"github.com/MacDuki/sharedShop/internal/ratelimit"
	"github.com/MacDuki/sharedShop/internal/service"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api/apiconnect"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager
	Logger        *slog.Logger

	// Limiter throttles invitation accepts. Nil disables throttling.
	Limiter ratelimit.Limiter

	// Registry receives RPC metrics and backs /metrics. Nil disables both.
	Registry *prometheus.Registry

	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter returns the root handler. AuthService is public; every other
// service requires a bearer token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		requestLogger(d.Logger),
		chimw.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: d.AllowedOrigins,
			AllowedMethods: []string{"POST", "GET", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
			ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
			MaxAge:         300,
		}),
	)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}

	var metrics *middleware.RPCMetrics
	if d.Registry != nil {
		metrics = middleware.NewRPCMetrics(d.Registry)
		r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}
	r.Get("/healthz", healthz(d.Store))

	public := connect.WithInterceptors(metrics.Interceptor(), middleware.LoggingInterceptor())
	private := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(d.JWTManager),
		middleware.LoggingInterceptor(),
	)

	r.Mount(apiconnect.NewAuthServiceHandler(service.NewAuthService(d.Authenticator, d.JWTManager, d.Logger), public))
	r.Mount(apiconnect.NewUserServiceHandler(service.NewUserService(d.Store, d.Authenticator), private))
	r.Mount(apiconnect.NewBudgetServiceHandler(service.NewBudgetService(d.Store), private))
	r.Mount(apiconnect.NewMembershipServiceHandler(service.NewMembershipService(d.Store, d.Limiter), private))
	r.Mount(apiconnect.NewItemServiceHandler(service.NewItemService(d.Store), private))
	r.Mount(apiconnect.NewHistoryServiceHandler(service.NewHistoryService(d.Store), private))
	r.Mount(apiconnect.NewNotificationServiceHandler(service.NewNotificationService(d.Store), private))

	return r
}

type pinger interface {
	Ping(ctx context.Context) error
}

func healthz(store pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := store.Ping(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}

// requestLogger logs every HTTP request with its status and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", chimw.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
