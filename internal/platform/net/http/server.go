package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"packrat/internal/platform/config"
	"packrat/internal/platform/logger"
	"packrat/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer creates an http server with the platform middleware stack installed
// cfg is the module-scoped config view (reads PORT, CORS_ORIGINS, SLOW)
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("PORT", ":4000")
	m := chi.NewRouter()

	m.Use(middleware.RequestID)
	m.Use(middleware.RecoverJSON)
	m.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{
		Slow: cfg.MayDuration("SLOW", 2*time.Second),
	}))
	m.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.MayString("CORS_ORIGINS", "*")},
		AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")
	err := s.srv.ListenAndServe()
	if err == stdhttp.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
