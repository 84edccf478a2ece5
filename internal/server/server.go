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

	_ "github.com/osse101/spotifylink/docs"
	"github.com/osse101/spotifylink/internal/database"
	"github.com/osse101/spotifylink/internal/handler"
	"github.com/osse101/spotifylink/internal/logger"
	"github.com/osse101/spotifylink/internal/metrics"
)

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, version string, dbPool database.Pool, authURL *handler.AuthURLHandlers, callback *handler.CallbackHandlers) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(trustedProxies, version, dbPool, authURL, callback),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       ReadTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter wires middleware and routes.
func NewRouter(trustedProxies []string, version string, dbPool database.Pool, authURL *handler.AuthURLHandlers, callback *handler.CallbackHandlers) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware(trustedProxies))
	r.Use(RecoverMiddleware(handler.HandleInternalErrorJSON()))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get(RouteHealthz, handler.HandleHealthz())
	r.Get(RouteReadyz, handler.HandleReadyz(dbPool))
	r.Get(RouteVersion, handler.HandleVersion(version))
	r.Handle(RouteMetrics, promhttp.Handler())

	// Both endpoints answer every method themselves so non-GET gets the
	// documented 405 body and Allow header.
	r.HandleFunc(RouteAuthURL, authURL.HandleAuthURL())
	r.With(RecoverMiddleware(handler.HandleInternalErrorPage())).
		HandleFunc(RouteCallback, callback.HandleCallback())

	r.Get(RouteSwagger, httpSwagger.WrapHandler)

	return r
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
		statusCode:     http.StatusOK,
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

func loggingMiddleware(trustedProxies []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range quietPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()
			ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
			r = r.WithContext(ctx)
			log := logger.FromContext(ctx)

			log.Info(LogMsgRequestStarted,
				"method", r.Method,
				"path", r.URL.Path,
				"query", redactQuery(r.URL.RawQuery),
				"client_ip", extractIP(r, trustedProxies),
				"user_agent", r.UserAgent())

			sanitized := make(http.Header, len(r.Header))
			for k, v := range r.Header {
				if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, HeaderCookie) {
					sanitized[k] = []string{logger.RedactedValue}
				} else {
					sanitized[k] = v
				}
			}
			log.Debug(LogMsgRequestHeaders, "headers", sanitized)

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			log.Info(LogMsgRequestCompleted,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", duration.Milliseconds())
		})
	}
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
