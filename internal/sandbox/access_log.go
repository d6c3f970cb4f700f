package sandbox

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"catalogadmin/internal/logging"
)

const requestIDHeader = "X-Request-Id"

type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.size += n
	return n, err
}

// withAccessLog tags every request with an id and logs one line per
// response. Server errors log at error level, client errors at warn, and
// health checks only at debug.
func withAccessLog(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		w.Header().Set(requestIDHeader, id)
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(sw, r)

		fields := []logging.Field{
			logging.F("request_id", id),
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", sw.status),
			logging.F("bytes", sw.size),
			logging.F("took", time.Since(start)),
		}
		if page := r.URL.Query().Get("page"); page != "" {
			fields = append(fields, logging.F("page", page))
		}
		switch {
		case sw.status >= 500:
			logger.Error("sandbox_request", fields...)
		case sw.status >= 400:
			logger.Warn("sandbox_request", fields...)
		case r.URL.Path == "/health":
			logger.Debug("sandbox_request", fields...)
		default:
			logger.Info("sandbox_request", fields...)
		}
	})
}

func newRequestID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf[:])
}
