package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

func TestResolveAnchor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	object := env.addObject(t, owner)

	photo := env.addResource(t, models.ResourcePhoto, object, owner, true)
	comment := env.addChildResource(t, models.ResourceComment, photo, owner, true)
	project := env.addResource(t, models.ResourceProject, object, owner, true)
	stage := env.addChildResource(t, models.ResourceStage, project, owner, true)

	tests := []struct {
		name         string
		resourceType models.ResourceType
		id           int64
		want         int64
	}{
		{"object resolves to itself", models.ResourceObject, object.ID, object.ID},
		{"photo anchors directly", models.ResourcePhoto, photo.ID, object.ID},
		{"comment walks through its photo", models.ResourceComment, comment.ID, object.ID},
		{"stage walks through its project", models.ResourceStage, stage.ID, object.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.resolver.ResolveAnchor(context.Background(), tt.resourceType, tt.id)
			if err != nil {
				t.Fatalf("ResolveAnchor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveAnchor() = %d, want %d", got, tt.want)
			}
		})
	}
}

// a record carrying both a direct object id and a parent link resolves
// by the object id alone, so conflicting links cannot mislead the walk
func TestResolveAnchor_DirectObjectIDWins(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	objectA := env.addObject(t, owner)
	objectB := env.addObject(t, owner)

	projectB := env.addResource(t, models.ResourceProject, objectB, owner, true)

	bim := &models.Resource{
		Type:          models.ResourceBimModel,
		ObjectID:      objectA.ID,
		ParentType:    models.ResourceProject,
		ParentID:      projectB.ID,
		AuthorActorID: owner.ID,
		Name:          "model",
	}
	if err := env.resources.Create(context.Background(), bim); err != nil {
		t.Fatalf("create bim model: %v", err)
	}

	got, err := env.resolver.ResolveAnchor(context.Background(), models.ResourceBimModel, bim.ID)
	if err != nil {
		t.Fatalf("ResolveAnchor() error = %v", err)
	}
	if got != objectA.ID {
		t.Errorf("ResolveAnchor() = %d, want direct object %d", got, objectA.ID)
	}
}

func TestResolveAnchor_FailsClosed(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	object := env.addObject(t, owner)
	photo := env.addResource(t, models.ResourcePhoto, object, owner, true)

	t.Run("missing resource", func(t *testing.T) {
		if _, err := env.resolver.ResolveAnchor(context.Background(), models.ResourcePhoto, 999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ResolveAnchor() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing object", func(t *testing.T) {
		if _, err := env.resolver.ResolveAnchor(context.Background(), models.ResourceObject, 999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ResolveAnchor() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("broken chain mid-walk", func(t *testing.T) {
		comment := env.addChildResource(t, models.ResourceComment, photo, owner, true)
		if err := env.resources.Delete(context.Background(), models.ResourcePhoto, photo.ID); err != nil {
			t.Fatalf("delete photo: %v", err)
		}
		if _, err := env.resolver.ResolveAnchor(context.Background(), models.ResourceComment, comment.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ResolveAnchor() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("assignment has no walkable anchor", func(t *testing.T) {
		if _, err := env.resolver.ResolveAnchor(context.Background(), models.ResourceAssignment, 1); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ResolveAnchor() error = %v, want ErrValidation", err)
		}
	})
}

func TestResolveCreateAnchor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	object := env.addObject(t, owner)
	project := env.addResource(t, models.ResourceProject, object, owner, true)
	photo := env.addResource(t, models.ResourcePhoto, object, owner, true)

	tests := []struct {
		name         string
		resourceType models.ResourceType
		containerID  int64
		want         int64
	}{
		{"photo attaches to the object", models.ResourcePhoto, object.ID, object.ID},
		{"stage attaches to a project", models.ResourceStage, project.ID, object.ID},
		{"comment attaches to a photo", models.ResourceComment, photo.ID, object.ID},
		{"assignment attaches to the object", models.ResourceAssignment, object.ID, object.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.resolver.ResolveCreateAnchor(context.Background(), tt.resourceType, tt.containerID)
			if err != nil {
				t.Fatalf("ResolveCreateAnchor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveCreateAnchor() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("missing container", func(t *testing.T) {
		if _, err := env.resolver.ResolveCreateAnchor(context.Background(), models.ResourceStage, 999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ResolveCreateAnchor() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("object has no container", func(t *testing.T) {
		if _, err := env.resolver.ResolveCreateAnchor(context.Background(), models.ResourceObject, object.ID); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ResolveCreateAnchor() error = %v, want ErrValidation", err)
		}
	})
}
