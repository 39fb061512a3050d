package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/DGersmv/personal-227-info-sub000/internal/auth"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/httputil"
)

// Auth extracts the bearer token, verifies it, and stores the resulting
// actor in the request context. A missing or invalid token does NOT
// reject the request here: the actor is simply left absent and the
// decision function answers Deny(Unauthenticated) once consulted. This
// keeps the 401 mapping in exactly one place.
func Auth(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			actor := &models.Actor{
				ID:         claims.ActorID(),
				GlobalRole: claims.GlobalRole,
				Name:       claims.Name,
			}
			next.ServeHTTP(w, httputil.WithActor(r, actor))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return header[len(prefix):]
}
