package auth

import "github.com/DGersmv/personal-227-info-sub000/internal/domain/models"

// TokenVerifier defines the interface for JWT token verification.
// This abstraction keeps the middleware agnostic to where the identity
// service publishes its keys.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed
	// actor claims. Returns an error if the token is invalid, expired,
	// or has an invalid signature.
	VerifyToken(tokenString string) (*models.ActorClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP
	// connections for JWKS refresh).
	Close() error
}
