package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// ContractReader answers batched zero-argument reads. *mint.Reader satisfies it.
type ContractReader interface {
	Read(ctx context.Context, names ...string) mint.ReadResult
}

// TokenFetcher lists minted tokens. *mint.Fetcher satisfies it.
type TokenFetcher interface {
	Fetch(ctx context.Context, r mint.Range) ([]mint.TokenPreview, error)
}

// Server is the storefront's JSON API.
type Server struct {
	addr      string
	log       *slog.Logger
	reader    ContractReader
	allowlist *config.Allowlist
	tokens    TokenFetcher
	gallery   uint64
	router    *chi.Mux
	httpSrv   *http.Server
}

// New builds the router. gallery is the default token window size.
func New(log *slog.Logger, addr string, reader ContractReader, allowlist *config.Allowlist, tokens TokenFetcher, gallery int) *Server {
	if log == nil {
		log = slog.Default()
	}
	if gallery < 1 {
		gallery = config.DefaultGallerySize
	}

	s := &Server{
		addr:      addr,
		log:       log,
		reader:    reader,
		allowlist: allowlist,
		tokens:    tokens,
		gallery:   uint64(gallery),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/contract-data/{fields}", s.handleContractData)
		r.Get("/allowlist/{address}", s.handleAllowlist)
		r.Get("/tokens", s.handleTokens)
	})

	s.router = r
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.log.Info("api listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down api server: %w", err)
	}
	s.log.Info("api stopped")
	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
