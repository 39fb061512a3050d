package models

import "time"

// ObjectStatus is the lifecycle state of a construction site object.
type ObjectStatus string

const (
	ObjectActive   ObjectStatus = "ACTIVE"
	ObjectArchived ObjectStatus = "ARCHIVED"
)

// Object is the top-level tenant-scoped resource every other entity is
// anchored to. Any authenticated actor may create one and becomes its
// owner; the creator's global role is unaffected.
type Object struct {
	ID           int64        `json:"id"`
	OwnerActorID int64        `json:"owner_actor_id"`
	Status       ObjectStatus `json:"status"`
	Name         string       `json:"name"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
