package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/DGersmv/personal-227-info-sub000/internal/httputil"
)

// RequestID tags every request with a unique id, honoring one supplied
// by an upstream proxy. The id travels in the context for log
// correlation and is echoed in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, httputil.WithRequestID(r, requestID))
	})
}
