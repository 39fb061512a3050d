package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
)

func TestUpsertAssignment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	builder := env.addActor(t, models.RoleBuilder)
	object := env.addObject(t, owner)

	t.Run("binds a matching designer", func(t *testing.T) {
		assignment, err := env.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
			ObjectID:      object.ID,
			TargetActorID: designer.ID,
			ScopedRole:    models.ScopedDesigner,
		})
		if err != nil {
			t.Fatalf("UpsertAssignment() error = %v", err)
		}
		if assignment.ActorID != designer.ID || assignment.ObjectID != object.ID || assignment.ScopedRole != models.ScopedDesigner {
			t.Errorf("UpsertAssignment() = %+v", assignment)
		}
	})

	t.Run("repeat upsert overwrites in place", func(t *testing.T) {
		if _, err := env.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
			ObjectID:      object.ID,
			TargetActorID: designer.ID,
			ScopedRole:    models.ScopedDesigner,
		}); err != nil {
			t.Fatalf("UpsertAssignment() error = %v", err)
		}

		assignments, err := env.registry.ListAssignments(context.Background(), object.ID)
		if err != nil {
			t.Fatalf("ListAssignments() error = %v", err)
		}
		if len(assignments) != 1 {
			t.Errorf("ListAssignments() returned %d bindings, want 1", len(assignments))
		}
	})

	t.Run("scoped role must match global role", func(t *testing.T) {
		_, err := env.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
			ObjectID:      object.ID,
			TargetActorID: builder.ID,
			ScopedRole:    models.ScopedDesigner,
		})
		if !errors.Is(err, domain.ErrRoleMismatch) {
			t.Errorf("UpsertAssignment() error = %v, want ErrRoleMismatch", err)
		}
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := env.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
			ObjectID:      999,
			TargetActorID: designer.ID,
			ScopedRole:    models.ScopedDesigner,
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("UpsertAssignment() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing target actor", func(t *testing.T) {
		_, err := env.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
			ObjectID:      object.ID,
			TargetActorID: 999,
			ScopedRole:    models.ScopedBuilder,
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("UpsertAssignment() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("owner is not an assignable scoped role", func(t *testing.T) {
		_, err := env.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
			ObjectID:      object.ID,
			TargetActorID: designer.ID,
			ScopedRole:    models.ScopedRole("OWNER"),
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("UpsertAssignment() error = %v, want ErrValidation", err)
		}
	})
}

func TestRemoveAssignment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	admin := env.addActor(t, models.RoleAdmin)
	designer := env.addActor(t, models.RoleDesigner)
	builder := env.addActor(t, models.RoleBuilder)
	object := env.addObject(t, owner)

	bind := func(t *testing.T, actor *models.Actor, role models.ScopedRole) {
		t.Helper()
		if _, err := env.registry.UpsertAssignment(context.Background(), &svcauthz.UpsertAssignmentRequest{
			ObjectID:      object.ID,
			TargetActorID: actor.ID,
			ScopedRole:    role,
		}); err != nil {
			t.Fatalf("UpsertAssignment() error = %v", err)
		}
	}

	t.Run("self-removal needs no standing", func(t *testing.T) {
		bind(t, designer, models.ScopedDesigner)
		err := env.registry.RemoveAssignment(context.Background(), &svcauthz.RemoveAssignmentRequest{
			ObjectID:        object.ID,
			TargetActorID:   designer.ID,
			RequestingActor: designer,
		})
		if err != nil {
			t.Fatalf("RemoveAssignment() error = %v", err)
		}
	})

	t.Run("owner removes a binding", func(t *testing.T) {
		bind(t, designer, models.ScopedDesigner)
		err := env.registry.RemoveAssignment(context.Background(), &svcauthz.RemoveAssignmentRequest{
			ObjectID:        object.ID,
			TargetActorID:   designer.ID,
			RequestingActor: owner,
		})
		if err != nil {
			t.Fatalf("RemoveAssignment() error = %v", err)
		}
	})

	t.Run("admin removes a binding", func(t *testing.T) {
		bind(t, designer, models.ScopedDesigner)
		err := env.registry.RemoveAssignment(context.Background(), &svcauthz.RemoveAssignmentRequest{
			ObjectID:        object.ID,
			TargetActorID:   designer.ID,
			RequestingActor: admin,
		})
		if err != nil {
			t.Fatalf("RemoveAssignment() error = %v", err)
		}
	})

	t.Run("another assignee may not remove", func(t *testing.T) {
		bind(t, designer, models.ScopedDesigner)
		bind(t, builder, models.ScopedBuilder)
		err := env.registry.RemoveAssignment(context.Background(), &svcauthz.RemoveAssignmentRequest{
			ObjectID:        object.ID,
			TargetActorID:   designer.ID,
			RequestingActor: builder,
		})
		if !errors.Is(err, domain.ErrNotPermitted) {
			t.Errorf("RemoveAssignment() error = %v, want ErrNotPermitted", err)
		}
	})

	t.Run("absent binding is NotFound before permission", func(t *testing.T) {
		err := env.registry.RemoveAssignment(context.Background(), &svcauthz.RemoveAssignmentRequest{
			ObjectID:        object.ID,
			TargetActorID:   999,
			RequestingActor: builder,
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("RemoveAssignment() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("nil requesting actor", func(t *testing.T) {
		err := env.registry.RemoveAssignment(context.Background(), &svcauthz.RemoveAssignmentRequest{
			ObjectID:      object.ID,
			TargetActorID: designer.ID,
		})
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("RemoveAssignment() error = %v, want ErrUnauthenticated", err)
		}
	})
}

func TestGetAssignment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	object := env.addObject(t, owner)
	env.assign(t, designer, object, models.ScopedDesigner)

	t.Run("existing binding", func(t *testing.T) {
		assignment, err := env.registry.GetAssignment(context.Background(), designer.ID, object.ID)
		if err != nil {
			t.Fatalf("GetAssignment() error = %v", err)
		}
		if assignment == nil || assignment.ScopedRole != models.ScopedDesigner {
			t.Errorf("GetAssignment() = %+v", assignment)
		}
	})

	t.Run("absence is nil, not an error", func(t *testing.T) {
		assignment, err := env.registry.GetAssignment(context.Background(), owner.ID, object.ID)
		if err != nil {
			t.Fatalf("GetAssignment() error = %v", err)
		}
		if assignment != nil {
			t.Errorf("GetAssignment() = %+v, want nil", assignment)
		}
	})
}

func TestGetObjectOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	object := env.addObject(t, owner)

	ownerID, err := env.registry.GetObjectOwner(context.Background(), object.ID)
	if err != nil {
		t.Fatalf("GetObjectOwner() error = %v", err)
	}
	if ownerID != owner.ID {
		t.Errorf("GetObjectOwner() = %d, want %d", ownerID, owner.ID)
	}

	if _, err := env.registry.GetObjectOwner(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetObjectOwner(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListAssignments_MissingObject(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.registry.ListAssignments(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ListAssignments() error = %v, want ErrNotFound", err)
	}
}

func TestListActorAssignments(t *testing.T) {
	env := newTestEnv(t)
	ownerA := env.addActor(t, models.RoleOwner)
	ownerB := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	builder := env.addActor(t, models.RoleBuilder)
	siteA := env.addObject(t, ownerA)
	siteB := env.addObject(t, ownerB)
	env.assign(t, designer, siteA, models.ScopedDesigner)
	env.assign(t, designer, siteB, models.ScopedDesigner)
	env.assign(t, builder, siteA, models.ScopedBuilder)

	bindings, err := env.registry.ListActorAssignments(context.Background(), designer)
	if err != nil {
		t.Fatalf("ListActorAssignments() error = %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("ListActorAssignments() = %d bindings, want 2", len(bindings))
	}
	for _, binding := range bindings {
		if binding.ActorID != designer.ID {
			t.Errorf("binding actor = %d, want %d", binding.ActorID, designer.ID)
		}
	}

	bindings, err = env.registry.ListActorAssignments(context.Background(), ownerA)
	if err != nil {
		t.Fatalf("ListActorAssignments(unassigned) error = %v", err)
	}
	if len(bindings) != 0 {
		t.Errorf("ListActorAssignments(unassigned) = %d bindings, want 0", len(bindings))
	}

	if _, err := env.registry.ListActorAssignments(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("ListActorAssignments(nil) error = %v, want ErrUnauthenticated", err)
	}
}
