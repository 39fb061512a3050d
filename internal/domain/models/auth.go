package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ActorClaims represents the JWT claims issued by the identity service.
// The subject claim carries the actor id as a decimal string; the global
// role is a custom claim stamped at account creation.
type ActorClaims struct {
	jwt.RegisteredClaims            // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	GlobalRole           GlobalRole `json:"global_role"`
	Name                 string     `json:"name,omitempty"`
}

// ActorID returns the actor id from the JWT subject claim, or 0 if the
// subject is missing or not a valid integer.
func (c *ActorClaims) ActorID() int64 {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
