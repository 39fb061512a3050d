package models

import "time"

// ScopedRole is the role an assignment binds an actor to on one object.
// Only the two working roles can be scoped; OWNER and ADMIN never appear
// in an assignment.
type ScopedRole string

const (
	ScopedDesigner ScopedRole = "DESIGNER"
	ScopedBuilder  ScopedRole = "BUILDER"
)

// Valid reports whether the scoped role is one of the two assignable roles.
func (r ScopedRole) Valid() bool {
	return r == ScopedDesigner || r == ScopedBuilder
}

// Matches reports whether the scoped role is consistent with an actor's
// global role. An assignment may only bind an actor under the role their
// account already carries.
func (r ScopedRole) Matches(g GlobalRole) bool {
	return string(r) == string(g)
}

// Assignment binds one actor to one object under a scoped role.
// The pair (ActorID, ObjectID) is unique; re-assigning the same pair
// overwrites the scoped role.
type Assignment struct {
	ActorID    int64      `json:"actor_id"`
	ObjectID   int64      `json:"object_id"`
	ScopedRole ScopedRole `json:"scoped_role"`
	AssignedAt time.Time  `json:"assigned_at"`
}
