package authz

import (
	"context"
	"testing"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
	"github.com/DGersmv/personal-227-info-sub000/internal/policy"
)

func TestAuthorize_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	decision, err := env.authorizer.Authorize(context.Background(), nil, models.ActionRead, models.ResourcePhoto, 1)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if decision.Allowed || decision.Reason != policy.ReasonUnauthenticated {
		t.Errorf("Authorize() = %+v, want Deny(UNAUTHENTICATED)", decision)
	}
}

func TestAuthorize_AdminBypass(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addActor(t, models.RoleAdmin)

	// admin passes every check, including ones against resources that
	// do not exist
	tests := []struct {
		name         string
		action       models.Action
		resourceType models.ResourceType
		resourceID   int64
	}{
		{"delete missing object", models.ActionDelete, models.ResourceObject, 999},
		{"create photo under missing object", models.ActionCreate, models.ResourcePhoto, 999},
		{"update missing bim model", models.ActionUpdate, models.ResourceBimModel, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := env.authorizer.Authorize(context.Background(), admin, tt.action, tt.resourceType, tt.resourceID)
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if !decision.Allowed {
				t.Errorf("Authorize() = %+v, want Allow", decision)
			}
		})
	}
}

func TestAuthorize_OwnerSupremacy(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	object := env.addObject(t, owner)
	photo := env.addResource(t, models.ResourcePhoto, object, owner, true)

	// every matrix grant OWNER holds on a type is honored for resources
	// anchored at the owner's own object
	tests := []struct {
		name         string
		action       models.Action
		resourceType models.ResourceType
		resourceID   int64
	}{
		{"delete own object", models.ActionDelete, models.ResourceObject, object.ID},
		{"read own object", models.ActionRead, models.ResourceObject, object.ID},
		{"update photo under own object", models.ActionUpdate, models.ResourcePhoto, photo.ID},
		{"delete photo under own object", models.ActionDelete, models.ResourcePhoto, photo.ID},
		{"create photo under own object", models.ActionCreate, models.ResourcePhoto, object.ID},
		{"create project under own object", models.ActionCreate, models.ResourceProject, object.ID},
		{"grant assignment on own object", models.ActionCreate, models.ResourceAssignment, object.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := env.authorizer.Authorize(context.Background(), owner, tt.action, tt.resourceType, tt.resourceID)
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if !decision.Allowed {
				t.Errorf("Authorize() = %+v, want Allow", decision)
			}
		})
	}
}

func TestAuthorize_NoImplicitCrossObjectAccess(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	builder := env.addActor(t, models.RoleBuilder)

	mine := env.addObject(t, owner)
	other := env.addObject(t, owner)
	env.assign(t, designer, mine, models.ScopedDesigner)
	env.assign(t, builder, mine, models.ScopedBuilder)

	photo := env.addResource(t, models.ResourcePhoto, other, owner, true)

	// neither working role reaches a resource on an object they are not
	// assigned to, whatever the matrix would grant them
	for _, actor := range []*models.Actor{designer, builder} {
		for _, action := range []models.Action{models.ActionRead, models.ActionUpdate, models.ActionDelete} {
			decision, err := env.authorizer.Authorize(context.Background(), actor, action, models.ResourcePhoto, photo.ID)
			if err != nil {
				t.Fatalf("Authorize(%s, %s) error = %v", actor.GlobalRole, action, err)
			}
			if decision.Allowed || decision.Reason != policy.ReasonNoAccess {
				t.Errorf("Authorize(%s, %s) = %+v, want Deny(NO_ACCESS)", actor.GlobalRole, action, decision)
			}
		}
	}
}

func TestAuthorize_OwnerRoleHasNoAccessToForeignObjects(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	other := env.addActor(t, models.RoleOwner)
	object := env.addObject(t, owner)
	photo := env.addResource(t, models.ResourcePhoto, object, owner, true)

	decision, err := env.authorizer.Authorize(context.Background(), other, models.ActionRead, models.ResourcePhoto, photo.ID)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if decision.Allowed || decision.Reason != policy.ReasonNoAccess {
		t.Errorf("Authorize() = %+v, want Deny(NO_ACCESS)", decision)
	}
}

func TestAuthorize_MatrixDeniesBeyondRelationship(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	builder := env.addActor(t, models.RoleBuilder)
	object := env.addObject(t, owner)
	env.assign(t, builder, object, models.ScopedBuilder)

	bim := env.addResource(t, models.ResourceBimModel, object, owner, true)

	// assigned and in reach, but the matrix grants builders read only
	decision, err := env.authorizer.Authorize(context.Background(), builder, models.ActionUpdate, models.ResourceBimModel, bim.ID)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if decision.Allowed || decision.Reason != policy.ReasonNotPermitted {
		t.Errorf("Authorize() = %+v, want Deny(NOT_PERMITTED)", decision)
	}

	read, err := env.authorizer.Authorize(context.Background(), builder, models.ActionRead, models.ResourceBimModel, bim.ID)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if !read.Allowed {
		t.Errorf("Authorize(read) = %+v, want Allow", read)
	}
}

func TestAuthorize_MissingResource(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	env.addObject(t, owner)

	decision, err := env.authorizer.Authorize(context.Background(), owner, models.ActionRead, models.ResourcePhoto, 42)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if decision.Allowed || decision.Reason != policy.ReasonNotFound {
		t.Errorf("Authorize() = %+v, want Deny(NOT_FOUND)", decision)
	}
}

func TestAuthorize_ProjectCreateRefinement(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	object := env.addObject(t, owner)
	unrelated := env.addObject(t, owner)
	env.assign(t, designer, object, models.ScopedDesigner)

	t.Run("assigned designer creates a project", func(t *testing.T) {
		decision, err := env.authorizer.Authorize(context.Background(), designer, models.ActionCreate, models.ResourceProject, object.ID)
		if err != nil {
			t.Fatalf("Authorize() error = %v", err)
		}
		if !decision.Allowed {
			t.Errorf("Authorize() = %+v, want Allow", decision)
		}
	})

	t.Run("same designer on an unrelated object", func(t *testing.T) {
		decision, err := env.authorizer.Authorize(context.Background(), designer, models.ActionCreate, models.ResourceProject, unrelated.ID)
		if err != nil {
			t.Fatalf("Authorize() error = %v", err)
		}
		if decision.Allowed || decision.Reason != policy.ReasonNoAccess {
			t.Errorf("Authorize() = %+v, want Deny(NO_ACCESS)", decision)
		}
	})
}

func TestAuthorize_AssignmentGrantIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	object := env.addObject(t, owner)
	env.assign(t, designer, object, models.ScopedDesigner)

	decision, err := env.authorizer.Authorize(context.Background(), designer, models.ActionCreate, models.ResourceAssignment, object.ID)
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if decision.Allowed {
		t.Errorf("Authorize() = %+v, want Deny", decision)
	}
}

func TestAuthorize_AuthorOnlyDelete(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	object := env.addObject(t, owner)
	env.assign(t, designer, object, models.ScopedDesigner)

	photo := env.addResource(t, models.ResourcePhoto, object, owner, true)
	comment := env.addChildResource(t, models.ResourceComment, photo, designer, false)
	bim := env.addResource(t, models.ResourceBimModel, object, designer, false)

	tests := []struct {
		name         string
		actor        *models.Actor
		resourceType models.ResourceType
		resourceID   int64
		wantAllow    bool
	}{
		{"author deletes own comment", designer, models.ResourceComment, comment.ID, true},
		{"object owner cannot delete another actor's comment", owner, models.ResourceComment, comment.ID, false},
		{"author deletes own bim model", designer, models.ResourceBimModel, bim.ID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := env.authorizer.Authorize(context.Background(), tt.actor, models.ActionDelete, tt.resourceType, tt.resourceID)
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if decision.Allowed != tt.wantAllow {
				t.Errorf("Authorize() = %+v, want allowed=%v", decision, tt.wantAllow)
			}
		})
	}
}

func TestAuthorize_UnscopedObjectCreation(t *testing.T) {
	env := newTestEnv(t)

	// any authenticated actor may create an object, whatever their role
	for _, role := range []models.GlobalRole{models.RoleOwner, models.RoleDesigner, models.RoleBuilder} {
		actor := env.addActor(t, role)
		decision, err := env.authorizer.Authorize(context.Background(), actor, models.ActionCreate, models.ResourceObject, 0)
		if err != nil {
			t.Fatalf("Authorize(%s) error = %v", role, err)
		}
		if !decision.Allowed {
			t.Errorf("Authorize(%s) = %+v, want Allow", role, decision)
		}
	}
}

func TestAuthorizeAnchored(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	stranger := env.addActor(t, models.RoleBuilder)
	object := env.addObject(t, owner)
	env.assign(t, designer, object, models.ScopedDesigner)

	tests := []struct {
		name       string
		actor      *models.Actor
		objectID   int64
		wantAllow  bool
		wantReason policy.Reason
	}{
		{"owner lists photos", owner, object.ID, true, ""},
		{"assigned designer lists photos", designer, object.ID, true, ""},
		{"stranger is denied", stranger, object.ID, false, policy.ReasonNoAccess},
		{"missing object", owner, 999, false, policy.ReasonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := env.authorizer.AuthorizeAnchored(context.Background(), tt.actor, models.ActionRead, models.ResourcePhoto, tt.objectID)
			if err != nil {
				t.Fatalf("AuthorizeAnchored() error = %v", err)
			}
			if decision.Allowed != tt.wantAllow {
				t.Errorf("AuthorizeAnchored() = %+v, want allowed=%v", decision, tt.wantAllow)
			}
			if !tt.wantAllow && decision.Reason != tt.wantReason {
				t.Errorf("AuthorizeAnchored() reason = %s, want %s", decision.Reason, tt.wantReason)
			}
		})
	}
}

func TestRelationshipTo(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleOwner)
	designer := env.addActor(t, models.RoleDesigner)
	stranger := env.addActor(t, models.RoleBuilder)
	object := env.addObject(t, owner)
	env.assign(t, designer, object, models.ScopedDesigner)

	tests := []struct {
		name     string
		actor    *models.Actor
		wantKind svcauthz.RelationshipKind
		wantRole models.ScopedRole
	}{
		{"owner", owner, svcauthz.RelationOwner, ""},
		{"assigned designer", designer, svcauthz.RelationAssigned, models.ScopedDesigner},
		{"stranger", stranger, svcauthz.RelationNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := env.authorizer.RelationshipTo(context.Background(), tt.actor, object.ID)
			if err != nil {
				t.Fatalf("RelationshipTo() error = %v", err)
			}
			if rel.Kind != tt.wantKind || rel.ScopedRole != tt.wantRole {
				t.Errorf("RelationshipTo() = %+v, want kind=%s role=%s", rel, tt.wantKind, tt.wantRole)
			}
		})
	}
}

// ownership wins when the same actor also holds an assignment
func TestRelationshipTo_OwnershipWins(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addActor(t, models.RoleBuilder)
	object := env.addObject(t, owner)
	env.assign(t, owner, object, models.ScopedBuilder)

	rel, err := env.authorizer.RelationshipTo(context.Background(), owner, object.ID)
	if err != nil {
		t.Fatalf("RelationshipTo() error = %v", err)
	}
	if rel.Kind != svcauthz.RelationOwner {
		t.Errorf("RelationshipTo() = %+v, want Owner", rel)
	}
}
