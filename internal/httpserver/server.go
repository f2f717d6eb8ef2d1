package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	contractdto "github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	saledto "github.com/fekuna/omnipos-rental-service/internal/sale/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Contracts is the part of contract.UseCase the side server needs.
type Contracts interface {
	ListContracts(ctx context.Context, filters *contractdto.ContractFilters) ([]model.Contract, int, error)
	RenderContract(ctx context.Context, id string, w io.Writer) error
}

// Sales is the part of sale.UseCase the side server needs.
type Sales interface {
	ListSales(ctx context.Context, filters *saledto.SaleFilters) ([]model.Sale, int, error)
}

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	router    *mux.Router
	server    *http.Server
	contracts Contracts
	sales     Sales
	checks    map[string]Check
	gatherer  prometheus.Gatherer
	logger    logger.ZapLogger
}

func NewServer(cfg *Config, contracts Contracts, sales Sales, checks map[string]Check, gatherer prometheus.Gatherer, log logger.ZapLogger) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		contracts: contracts,
		sales:     sales,
		checks:    checks,
		gatherer:  gatherer,
		logger:    log,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router.HandleFunc("/export/contracts.csv", s.exportContracts).Methods(http.MethodGet)
	s.router.HandleFunc("/export/sales.csv", s.exportSales).Methods(http.MethodGet)
	s.router.HandleFunc("/contracts/{id}/document", s.contractDocument).Methods(http.MethodGet)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	result := make(map[string]string, len(s.checks))
	healthy := true
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			result[name] = err.Error()
			healthy = false
			continue
		}
		result[name] = "ok"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"healthy": healthy, "checks": result})
}

func (s *Server) contractDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// Rendered into a buffer so a failed render never leaves a half written 200.
	var buf bytes.Buffer
	if err := s.contracts.RenderContract(r.Context(), id, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		code = http.StatusNotFound
	case apperr.KindInvalid:
		code = http.StatusBadRequest
	case apperr.KindBusy:
		code = http.StatusServiceUnavailable
	}
	if code == http.StatusInternalServerError {
		s.logger.Error("http request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

type requestIDKey struct{}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID)))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		requestID, _ := r.Context().Value(requestIDKey{}).(string)
		s.logger.Debug("http request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
