// Package policy holds the static action-permission matrix and the
// decision values produced by the authorization core. The matrix is
// built once at process start and never mutated afterwards, so
// concurrent readers need no locking.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
)

type actionSet map[models.Action]struct{}

// Matrix maps globalRole -> resourceType -> allowed actions. It states
// baseline capability only: the decision function narrows it further
// with ownership and assignment context. ADMIN is not stored - it is a
// precondition short-circuit evaluated before any lookup.
type Matrix struct {
	grants map[models.GlobalRole]map[models.ResourceType]actionSet
}

// Allows reports whether the matrix grants the action as a baseline.
// ADMIN always passes; for every other role absence means NotPermitted.
func (m *Matrix) Allows(role models.GlobalRole, resourceType models.ResourceType, action models.Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	byType, ok := m.grants[role]
	if !ok {
		return false
	}
	actions, ok := byType[resourceType]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// rules is the loadable form: role -> resource type -> action list.
type rules map[models.GlobalRole]map[models.ResourceType][]models.Action

const (
	crud = "crud"
	ro   = "r"
)

// shorthand expansion used by the built-in table
var actionSpans = map[string][]models.Action{
	crud: {models.ActionCreate, models.ActionRead, models.ActionUpdate, models.ActionDelete},
	ro:   {models.ActionRead},
}

func span(s string) []models.Action { return actionSpans[s] }

// Default returns the built-in baseline matrix.
//
// Every role may create an object (object creation is unscoped - the
// creator becomes its owner regardless of global role). Beyond that,
// customers manage their own uploads and read everything surfaced to
// them, designers run the design-side records, builders run the
// build-side ones.
func Default() *Matrix {
	r := rules{
		models.RoleOwner: {
			models.ResourceObject:     span(crud),
			models.ResourceProject:    {models.ActionCreate, models.ActionRead},
			models.ResourceStage:      span(ro),
			models.ResourcePhoto:      span(crud),
			models.ResourceVideo:      span(crud),
			models.ResourceBimModel:   span(ro),
			models.ResourceDocument:   span(crud),
			models.ResourceComment:    span(crud),
			models.ResourceFolder:     span(crud),
			models.ResourcePortfolio:  span(ro),
			models.ResourceAssignment: span(crud),
		},
		models.RoleDesigner: {
			models.ResourceObject:     {models.ActionCreate, models.ActionRead},
			models.ResourceProject:    span(crud),
			models.ResourceStage:      span(crud),
			models.ResourcePhoto:      span(crud),
			models.ResourceVideo:      span(crud),
			models.ResourceBimModel:   span(crud),
			models.ResourceDocument:   span(crud),
			models.ResourceComment:    span(crud),
			models.ResourceFolder:     span(crud),
			models.ResourcePortfolio:  span(crud),
			models.ResourceAssignment: {models.ActionRead, models.ActionDelete},
		},
		models.RoleBuilder: {
			models.ResourceObject:     {models.ActionCreate, models.ActionRead},
			models.ResourceProject:    span(ro),
			models.ResourceStage:      {models.ActionRead, models.ActionUpdate},
			models.ResourcePhoto:      span(crud),
			models.ResourceVideo:      span(crud),
			models.ResourceBimModel:   span(ro),
			models.ResourceDocument:   span(ro),
			models.ResourceComment:    {models.ActionCreate, models.ActionRead},
			models.ResourceFolder:     span(ro),
			models.ResourcePortfolio:  span(ro),
			models.ResourceAssignment: {models.ActionRead, models.ActionDelete},
		},
	}
	m, err := fromRules(r)
	if err != nil {
		// the built-in table is a compile-time constant in all but name
		panic(fmt.Sprintf("policy: invalid built-in matrix: %v", err))
	}
	return m
}

// LoadFile parses a YAML policy override and returns the frozen matrix.
// The file maps role -> resource type -> action list:
//
//	DESIGNER:
//	  project: [create, read, update, delete]
//	  stage: [read]
//
// Unknown roles, resource types or actions fail the load; an ADMIN
// section is rejected because admin capability is implicit.
func LoadFile(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	var r rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	m, err := fromRules(r)
	if err != nil {
		return nil, fmt.Errorf("policy file %s: %w", path, err)
	}
	return m, nil
}

func fromRules(r rules) (*Matrix, error) {
	grants := make(map[models.GlobalRole]map[models.ResourceType]actionSet, len(r))
	for role, byType := range r {
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q", role)
		}
		if role == models.RoleAdmin {
			return nil, fmt.Errorf("ADMIN entries are not allowed: admin capability is implicit")
		}
		typeGrants := make(map[models.ResourceType]actionSet, len(byType))
		for resourceType, actions := range byType {
			if !resourceType.Valid() {
				return nil, fmt.Errorf("unknown resource type %q", resourceType)
			}
			set := make(actionSet, len(actions))
			for _, action := range actions {
				if !action.Valid() {
					return nil, fmt.Errorf("unknown action %q for %s/%s", action, role, resourceType)
				}
				set[action] = struct{}{}
			}
			typeGrants[resourceType] = set
		}
		grants[role] = typeGrants
	}
	return &Matrix{grants: grants}, nil
}
