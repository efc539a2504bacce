package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
)

const fallbackBody = `{"error":"¡Algo salió mal! Ha ocurrido un error inesperado. Por favor, intenta recargar la página."}`

type ctxKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

// Hijack keeps websocket upgrades working behind the recorder
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

func LoggingMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = fmt.Sprintf("req-%d", time.Now().UnixNano())
			}
			w.Header().Set("X-Request-ID", reqID)
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, reqID))

			logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), reqID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.Debug("http_response", "Request completed", reqID, map[string]interface{}{
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

// RecoveryMiddleware logs the panic with its stack and answers a static fallback.
// A response already under way is left as is.
func RecoveryMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic_recovered", "Panic recovered", requestID(r), map[string]interface{}{
						"stack":        string(debug.Stack()),
						"headers_sent": sw.wroteHeader,
					}, fmt.Errorf("%v", rec))

					if sw.wroteHeader {
						return
					}
					sw.Header().Set("Content-Type", "application/json")
					sw.WriteHeader(http.StatusInternalServerError)
					sw.Write([]byte(fallbackBody))
				}
			}()
			next.ServeHTTP(sw, r)
		})
	}
}
