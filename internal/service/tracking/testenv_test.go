package tracking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
	svctracking "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/tracking"
	"github.com/DGersmv/personal-227-info-sub000/internal/policy"
	"github.com/DGersmv/personal-227-info-sub000/internal/repository/inmem"
	"github.com/DGersmv/personal-227-info-sub000/internal/service/authz"
)

// testEnv wires the tracking services over in-memory repositories and
// the real authorization core.
type testEnv struct {
	actors    repositories.ActorRepository
	registry  svcauthz.Registry
	objects   svctracking.ObjectService
	resources svctracking.ResourceService

	nextName int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := inmem.NewStore()

	actorRepo := inmem.NewActorRepository(store)
	objectRepo := inmem.NewObjectRepository(store)
	assignmentRepo := inmem.NewAssignmentRepository(store)
	resourceRepo := inmem.NewResourceRepository(store)
	txManager := inmem.NewTransactionManager()

	resolver := authz.NewResolver(objectRepo, resourceRepo, logger)
	registry := authz.NewRegistry(objectRepo, actorRepo, assignmentRepo, txManager, logger)
	authorizer := authz.NewAuthorizer(registry, resolver, resourceRepo, policy.Default(), logger)

	return &testEnv{
		actors:    actorRepo,
		registry:  registry,
		objects:   NewObjectService(objectRepo, authorizer, logger),
		resources: NewResourceService(resourceRepo, authorizer, resolver, logger),
	}
}

func (e *testEnv) addActor(t *testing.T, role models.GlobalRole) *models.Actor {
	t.Helper()
	actor := &models.Actor{GlobalRole: role, Name: "actor"}
	if err := e.actors.Create(context.Background(), actor); err != nil {
		t.Fatalf("create actor: %v", err)
	}
	return actor
}

func (e *testEnv) createObject(t *testing.T, owner *models.Actor) *models.Object {
	t.Helper()
	e.nextName++
	object, err := e.objects.CreateObject(context.Background(), owner, &svctracking.CreateObjectRequest{
		Name: fmt.Sprintf("site %d", e.nextName),
	})
	if err != nil {
		t.Fatalf("CreateObject() error = %v", err)
	}
	return object
}

func (e *testEnv) assignDesigner(t *testing.T, actor *models.Actor, object *models.Object) {
	t.Helper()
	if _, err := e.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
		ObjectID:      object.ID,
		TargetActorID: actor.ID,
		ScopedRole:    models.ScopedDesigner,
	}); err != nil {
		t.Fatalf("UpsertAssignment() error = %v", err)
	}
}
