// Package http is the JSON shell around the planning engine: it collects
// input payloads, invokes the analysis service, and renders the result
// bundle. All scenario state lives in the in-memory store.
package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finplan/internal/log"
	"finplan/internal/services"
	memory "finplan/internal/store/memory"
)

// Options tunes the server beyond its dependencies.
type Options struct {
	DefaultHorizonMonths int
	DemoSeed             uint64
	RateLimit            int
	Logger               *log.Logger
	Registry             prometheus.Registerer
	// Now supplies the clock used when a request omits "today".
	Now func() time.Time
}

type Server struct {
	http.Server

	analysis  *services.AnalysisService
	scenarios *memory.Store
	validate  *validator.Validate
	logger    *log.Logger

	defaultHorizon int
	demoSeed       uint64
	now            func() time.Time

	rateLimiter  *rateLimiter
	metrics      *httpMetrics
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, analysis *services.AnalysisService, scenarios *memory.Store, opts Options) *Server {
	if opts.DefaultHorizonMonths < 1 {
		opts.DefaultHorizonMonths = 6
	}
	if opts.RateLimit < 1 {
		opts.RateLimit = 120
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		analysis:       analysis,
		scenarios:      scenarios,
		validate:       validator.New(),
		logger:         opts.Logger.WithComponent(log.ComponentHTTP),
		defaultHorizon: opts.DefaultHorizonMonths,
		demoSeed:       opts.DemoSeed,
		now:            opts.Now,
		rateLimiter:    newRateLimiter(opts.RateLimit),
		metrics:        newHTTPMetrics(opts.Registry),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	if gatherer, ok := opts.Registry.(prometheus.Gatherer); ok {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("POST /api/analyze", s.withMiddleware(s.handleAnalyze))

	mux.HandleFunc("POST /api/scenarios", s.withMiddleware(s.handleCreateScenario))
	mux.HandleFunc("GET /api/scenarios", s.withMiddleware(s.handleListScenarios))
	mux.HandleFunc("GET /api/scenarios/{id}", s.withMiddleware(s.handleGetScenario))
	mux.HandleFunc("DELETE /api/scenarios/{id}", s.withMiddleware(s.handleDeleteScenario))
	mux.HandleFunc("PUT /api/scenarios/{id}/records", s.withMiddleware(s.handleSetRecords))
	mux.HandleFunc("PUT /api/scenarios/{id}/goals", s.withMiddleware(s.handleSetGoals))
	mux.HandleFunc("PUT /api/scenarios/{id}/balance", s.withMiddleware(s.handleSetBalance))
	mux.HandleFunc("POST /api/scenarios/{id}/analyze", s.withMiddleware(s.handleAnalyzeScenario))

	return s
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request IDs, logging, security headers, rate
// limiting on mutating methods, and request metrics.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientAddr(r)
		requestID := "req_" + uuid.NewString()

		reqLogger := s.logger.With(log.FieldRequestID, requestID)
		ctx := log.IntoContext(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		reqLogger.InfoContext(ctx, "Request started",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		if mutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.metrics.observe(r.Method, r.URL.Path, rw.statusCode, duration)
		reqLogger.InfoContext(ctx, "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds())
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// clientAddr extracts the client IP, honoring common proxy headers.
func clientAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// httpMetrics instruments the request path.
type httpMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	factory := promauto.With(reg)
	return &httpMetrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finplan_http_requests_total",
				Help: "Total HTTP requests by method, path, and status",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finplan_http_request_duration_milliseconds",
				Help:    "HTTP request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
			},
		),
	}
}

func (m *httpMetrics) observe(method, path string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.Observe(float64(elapsed.Microseconds()) / 1000.0)
}
