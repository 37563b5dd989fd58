package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/templui/brainbox/internal/logger"
)

// statusRecorder remembers the first status written so it can be logged.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status == 0 {
		sr.status = code
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	return sr.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// Paths to skip logging (health probes)
var skipLoggingPaths = []string{
	"/healthz",
}

// sharePathPrefix is the public share route; the trailing segment is a bearer
// capability and never goes to the logs in full.
const sharePathPrefix = "/api/v1/share/"

func maskedPath(path string) string {
	hash, ok := strings.CutPrefix(path, sharePathPrefix)
	if !ok || hash == "" {
		return path
	}
	return sharePathPrefix + logger.Mask(hash)
}

// RequestLogging logs one line per request. Share hashes in the path are masked.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.Contains(skipLoggingPaths, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		slog.Info("http request",
			"method", r.Method,
			"path", maskedPath(r.URL.Path),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}
