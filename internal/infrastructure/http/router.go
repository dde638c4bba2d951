package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/authgate/authgate/internal/infrastructure/http/handlers"
	"github.com/authgate/authgate/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	HealthHandler  *handlers.HealthHandler
	RequireSession func(http.Handler) http.Handler // session cookie auth for /check-auth
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	CORS           func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.Post("/verify-email", cfg.AuthHandler.VerifyEmail)
		r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
		r.Post("/reset-password/{token}", cfg.AuthHandler.ResetPassword)
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Get("/check-auth", cfg.AuthHandler.CheckAuth)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
