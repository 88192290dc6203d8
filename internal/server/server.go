package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mkarlsen/GameShelf_Go/internal/catalog"
	"github.com/mkarlsen/GameShelf_Go/internal/completion"
	"github.com/mkarlsen/GameShelf_Go/internal/database"
	"github.com/mkarlsen/GameShelf_Go/internal/handler"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/metrics"
	"github.com/mkarlsen/GameShelf_Go/internal/ownership"
	"github.com/mkarlsen/GameShelf_Go/internal/playsession"
	"github.com/mkarlsen/GameShelf_Go/internal/progress"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	catalogService    catalog.Service
	ownershipService  ownership.Service
	completionService completion.Service
	sessionService    playsession.Service
	progressService   progress.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, catalogService catalog.Service, ownershipService ownership.Service, completionService completion.Service, sessionService playsession.Service, progressService progress.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Catalog routes
		r.Route("/additions", func(r chi.Router) {
			r.Get("/{additionID}", handler.HandleGetAddition(catalogService))
			r.Patch("/{additionID}/tuning", handler.HandleUpdateTuning(catalogService))
		})

		// Per-game routes
		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/additions", handler.HandleListAdditions(catalogService))

			r.Route("/ownership", func(r chi.Router) {
				r.Get("/", handler.HandleGetOwnership(ownershipService))
				r.Put("/edition", handler.HandleSetEdition(ownershipService))
				r.Put("/dlcs", handler.HandleSetDLCOwnership(ownershipService))
			})

			r.Route("/completion", func(r chi.Router) {
				r.Post("/recalculate", handler.HandleRecalculateCompletion(completionService))
				r.Post("/log", handler.HandleAppendCompletionLog(completionService))
				r.Get("/log", handler.HandleListCompletionLog(completionService))
				r.Delete("/log/{entryID}", handler.HandleDeleteCompletionLog(completionService))
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", handler.HandleStartSession(sessionService))
				r.Get("/", handler.HandleListSessions(sessionService))
				r.Post("/manual", handler.HandleManualSession(sessionService))
				r.Post("/{sessionID}/end", handler.HandleEndSession(sessionService))
				r.Delete("/{sessionID}", handler.HandleDeleteSession(sessionService))
			})

			r.Get("/playtime", handler.HandleGetPlaytime(sessionService))

			r.Route("/progress", func(r chi.Router) {
				r.Get("/", handler.HandleGetProgress(progressService))
				r.Put("/", handler.HandleSetProgress(progressService))
			})
		})

		// The single cross-game session endpoint
		r.Get("/sessions/active", handler.HandleGetActiveSession(sessionService))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		catalogService:    catalogService,
		ownershipService:  ownershipService,
		completionService: completionService,
		sessionService:    sessionService,
		progressService:   progressService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
