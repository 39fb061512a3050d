package authz

import (
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
)

// FilterVisible applies the owner-view visibility filter to a read
// result. Viewers whose relationship to the anchor object is Owner see
// only records flagged visible; assigned actors and admins always see
// the full collection. The filter is orthogonal to authorization: it
// runs only after the read itself was allowed, and passing it implies
// nothing about write permission.
func FilterVisible(viewer *models.Actor, rel svcauthz.Relationship, records []models.Resource) []models.Resource {
	if viewer.IsAdmin() || rel.Kind != svcauthz.RelationOwner {
		return records
	}
	filtered := make([]models.Resource, 0, len(records))
	for _, record := range records {
		if record.VisibleToOwner {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// DefaultVisibility decides the visible_to_owner flag for a record
// being created. Records created by the object's owner are always
// visible to them; for every other creator the flag is caller-supplied
// and defaults to hidden, so work in progress is never exposed by
// accident.
func DefaultVisibility(rel svcauthz.Relationship, supplied *bool) bool {
	if rel.Kind == svcauthz.RelationOwner {
		return true
	}
	if supplied == nil {
		return false
	}
	return *supplied
}
