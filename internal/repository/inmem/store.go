// Package inmem provides map-backed implementations of the repository
// interfaces. They carry the same error semantics as the postgres
// implementations and serve both as test doubles and as a storage
// backend for embedded use.
package inmem

import (
	"sync"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

type assignmentKey struct {
	actorID  int64
	objectID int64
}

// Store holds all in-memory state behind one mutex. Repositories
// created from the same store share it, mirroring how the postgres
// repositories share a pool.
type Store struct {
	mu sync.Mutex

	actors      map[int64]models.Actor
	objects     map[int64]models.Object
	assignments map[assignmentKey]models.Assignment
	resources   map[int64]models.Resource

	nextActorID    int64
	nextObjectID   int64
	nextResourceID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		actors:      make(map[int64]models.Actor),
		objects:     make(map[int64]models.Object),
		assignments: make(map[assignmentKey]models.Assignment),
		resources:   make(map[int64]models.Resource),
	}
}
