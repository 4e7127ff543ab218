package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
	log  zerolog.Logger
}

// NewServer creates a metrics server over the given registry.
func NewServer(addr string, g prometheus.Gatherer, log zerolog.Logger) *Server {
	return &Server{
		addr: addr,
		log:  log,
		srv: &http.Server{
			Addr:    addr,
			Handler: Handler(g),
		},
	}
}

// Handler routes the metrics and health endpoints.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("metrics server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("metrics server error")
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
