package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logging пишет строку access-лога на каждый запрос
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := newStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			requestID, _ := GetRequestID(r.Context())
			duration := time.Since(start)

			switch {
			case recorder.status >= http.StatusInternalServerError:
				logger.Error("%s %s -> %d (%d bytes, %s) request_id=%s",
					r.Method, r.URL.RequestURI(), recorder.status, recorder.size, duration, requestID)
			case recorder.status >= http.StatusBadRequest:
				logger.Warn("%s %s -> %d (%d bytes, %s) request_id=%s",
					r.Method, r.URL.RequestURI(), recorder.status, recorder.size, duration, requestID)
			default:
				logger.Info("%s %s -> %d (%d bytes, %s) request_id=%s",
					r.Method, r.URL.RequestURI(), recorder.status, recorder.size, duration, requestID)
			}
		})
	}
}
