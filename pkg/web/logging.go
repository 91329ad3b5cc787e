package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/kanban/pkg/stats"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
)

// statusRecorder remembers the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	code  int
	bytes int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, code: http.StatusOK}
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// NewLoggingMiddleware logs one line per request. Server errors are logged
// at error level, everything else at debug.
func NewLoggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		kv := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.code,
			"size", humanize.Bytes(uint64(rec.bytes)), //nolint:gosec
			"took", time.Since(start),
			"addr", r.RemoteAddr,
		}
		if rec.code >= http.StatusInternalServerError {
			logger.Error("request", kv...)
			return
		}
		logger.Debug("request", kv...)
	})
}

// countRequests counts API responses by route template and status code.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		route := "unknown"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		stats.RequestCounter.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}
