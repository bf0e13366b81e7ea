package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/dossier/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler Summarizer

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	store      Store
	scheduler  Scheduler
	summarizer Summarizer
	version    string
	debug      bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store provides read access to dossiers, deliveries and styles
type Store interface {
	ListActive(ctx context.Context) ([]domain.Dossier, error)
	GetDossier(ctx context.Context, id int64) (*domain.Dossier, error)
	ListDeliveries(ctx context.Context, dossierID int64, limit int) ([]domain.Delivery, error)
	ListStyles(ctx context.Context) ([]domain.Style, error)
}

// Scheduler interface for on-demand runs and state reporting
type Scheduler interface {
	RunNow(ctx context.Context, id int64) error
	IsRunning() bool
	InFlight() int
}

// Summarizer makes an ad-hoc summary of arbitrary text
type Summarizer interface {
	Summarize(ctx context.Context, text, style, lang string) (string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, store Store, scheduler Scheduler, summarizer Summarizer, version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		store:      store,
		scheduler:  scheduler,
		summarizer: summarizer,
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("dossier", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/status", s.statusHandler},
		{http.MethodGet, "/dossiers", s.listDossiersHandler},
		{http.MethodGet, "/dossiers/{id}/deliveries", s.deliveriesHandler},
		{http.MethodPost, "/dossiers/{id}/run", s.runHandler},
		{http.MethodGet, "/styles", s.stylesHandler},
		{http.MethodPost, "/summarize", s.summarizeHandler},
	}

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		for _, rt := range routes {
			r.HandleFunc(rt.method+" "+rt.path, rt.handler)
			// the root not found handler catches any method, known paths answer 405 instead
			r.HandleFunc(rt.path, methodNotAllowed(rt.method))
		}
	})
}

// methodNotAllowed responds with 405 and the allowed method
func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		renderError(w, r, fmt.Errorf("method %s not allowed", r.Method), http.StatusMethodNotAllowed)
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
