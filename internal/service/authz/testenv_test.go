package authz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
	"github.com/DGersmv/personal-227-info-sub000/internal/policy"
	"github.com/DGersmv/personal-227-info-sub000/internal/repository/inmem"
)

// testEnv wires the authorization core over in-memory repositories.
type testEnv struct {
	actors      repositories.ActorRepository
	objects     repositories.ObjectRepository
	assignments repositories.AssignmentRepository
	resources   repositories.ResourceRepository
	resolver    svcauthz.Resolver
	registry    svcauthz.Registry
	authorizer  svcauthz.Authorizer

	nextName int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := inmem.NewStore()

	env := &testEnv{
		actors:      inmem.NewActorRepository(store),
		objects:     inmem.NewObjectRepository(store),
		assignments: inmem.NewAssignmentRepository(store),
		resources:   inmem.NewResourceRepository(store),
	}
	env.resolver = NewResolver(env.objects, env.resources, logger)
	env.registry = NewRegistry(env.objects, env.actors, env.assignments, inmem.NewTransactionManager(), logger)
	env.authorizer = NewAuthorizer(env.registry, env.resolver, env.resources, policy.Default(), logger)
	return env
}

func (e *testEnv) addActor(t *testing.T, role models.GlobalRole) *models.Actor {
	t.Helper()
	actor := &models.Actor{GlobalRole: role, Name: "actor"}
	if err := e.actors.Create(context.Background(), actor); err != nil {
		t.Fatalf("create actor: %v", err)
	}
	return actor
}

func (e *testEnv) addObject(t *testing.T, owner *models.Actor) *models.Object {
	t.Helper()
	e.nextName++
	object := &models.Object{
		OwnerActorID: owner.ID,
		Status:       models.ObjectActive,
		Name:         fmt.Sprintf("site %d", e.nextName),
	}
	if err := e.objects.Create(context.Background(), object); err != nil {
		t.Fatalf("create object: %v", err)
	}
	return object
}

func (e *testEnv) assign(t *testing.T, actor *models.Actor, object *models.Object, role models.ScopedRole) {
	t.Helper()
	err := e.assignments.Upsert(context.Background(), &models.Assignment{
		ActorID:    actor.ID,
		ObjectID:   object.ID,
		ScopedRole: role,
		AssignedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("upsert assignment: %v", err)
	}
}

// addResource inserts a record anchored directly at an object.
func (e *testEnv) addResource(t *testing.T, resourceType models.ResourceType, object *models.Object, author *models.Actor, visible bool) *models.Resource {
	t.Helper()
	resource := &models.Resource{
		Type:           resourceType,
		ObjectID:       object.ID,
		AuthorActorID:  author.ID,
		VisibleToOwner: visible,
		Name:           string(resourceType),
	}
	if err := e.resources.Create(context.Background(), resource); err != nil {
		t.Fatalf("create %s: %v", resourceType, err)
	}
	return resource
}

// addChildResource inserts a record anchored through a parent link.
func (e *testEnv) addChildResource(t *testing.T, resourceType models.ResourceType, parent *models.Resource, author *models.Actor, visible bool) *models.Resource {
	t.Helper()
	resource := &models.Resource{
		Type:           resourceType,
		ParentType:     parent.Type,
		ParentID:       parent.ID,
		AuthorActorID:  author.ID,
		VisibleToOwner: visible,
		Name:           string(resourceType),
	}
	if err := e.resources.Create(context.Background(), resource); err != nil {
		t.Fatalf("create %s: %v", resourceType, err)
	}
	return resource
}
