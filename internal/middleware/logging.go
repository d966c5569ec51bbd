package middleware

import (
	"log"
	"net/http"
	"time"
)

// responseWriter captures status and size for the access log
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// LoggingMiddleware emits one key=value access line per request. Mounted
// after SessionAuth so the resolved user id is on the context.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Printf("method=%s path=%s status=%d duration=%s bytes=%d user=%d ip=%s",
			r.Method, r.URL.Path, wrapped.statusCode, time.Since(start),
			wrapped.written, GetUserIDFromContext(r.Context()), r.RemoteAddr)
	})
}
