package models

import "time"

// ResourceType names everything the policy matrix and the hierarchy
// resolver can be asked about, the top-level object included.
type ResourceType string

const (
	ResourceObject     ResourceType = "object"
	ResourceProject    ResourceType = "project"
	ResourceStage      ResourceType = "stage"
	ResourcePhoto      ResourceType = "photo"
	ResourceVideo      ResourceType = "video"
	ResourceBimModel   ResourceType = "bim_model"
	ResourceDocument   ResourceType = "document"
	ResourceComment    ResourceType = "comment"
	ResourceFolder     ResourceType = "folder"
	ResourcePortfolio  ResourceType = "portfolio"
	ResourceAssignment ResourceType = "assignment"
)

// Valid reports whether the resource type is known.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceObject, ResourceProject, ResourceStage, ResourcePhoto,
		ResourceVideo, ResourceBimModel, ResourceDocument, ResourceComment,
		ResourceFolder, ResourcePortfolio, ResourceAssignment:
		return true
	}
	return false
}

// Nested reports whether records of this type hang under an object.
func (t ResourceType) Nested() bool {
	return t.Valid() && t != ResourceObject && t != ResourceAssignment
}

// Action is one of the four CRUD verbs the policy matrix grants.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether the action is a known verb.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Resource is the uniform record shape shared by every nested entity
// (projects, stages, photos, videos, BIM models, documents, comments,
// folders, portfolios). Domain-specific payloads live with the storage
// collaborator; authorization only needs the anchoring and visibility
// fields carried here.
//
// A record anchors to its object either directly through ObjectID or
// transitively through the (ParentType, ParentID) link. A BIM model may
// additionally link to a project or stage, but that linkage is
// informational - the direct ObjectID always wins during resolution.
type Resource struct {
	ID             int64        `json:"id"`
	Type           ResourceType `json:"type"`
	ObjectID       int64        `json:"object_id,omitempty"`
	ParentType     ResourceType `json:"parent_type,omitempty"`
	ParentID       int64        `json:"parent_id,omitempty"`
	AuthorActorID  int64        `json:"author_actor_id"`
	VisibleToOwner bool         `json:"visible_to_owner"`
	Name           string       `json:"name,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
