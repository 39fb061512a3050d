package models

import "time"

// GlobalRole is the role fixed on an actor at account creation.
// It is immutable for the lifetime of a request and is never changed
// by owning an object.
type GlobalRole string

const (
	RoleOwner    GlobalRole = "OWNER"
	RoleDesigner GlobalRole = "DESIGNER"
	RoleBuilder  GlobalRole = "BUILDER"
	RoleAdmin    GlobalRole = "ADMIN"
)

// Valid reports whether the role is one of the four known global roles.
func (r GlobalRole) Valid() bool {
	switch r {
	case RoleOwner, RoleDesigner, RoleBuilder, RoleAdmin:
		return true
	}
	return false
}

// Actor is an authenticated identity. Authentication itself is the
// identity collaborator's responsibility; by the time an Actor reaches
// this package it is assumed verified.
type Actor struct {
	ID         int64      `json:"id"`
	GlobalRole GlobalRole `json:"global_role"`
	Name       string     `json:"name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsAdmin reports whether the actor bypasses all policy checks.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.GlobalRole == RoleAdmin
}
