package handler

import (
	"log/slog"
	"net/http"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	svcauthz "github.com/DGersmv/personal-227-info-sub000/internal/domain/services/authz"
	"github.com/DGersmv/personal-227-info-sub000/internal/httputil"
)

// AssignmentHandler handles HTTP requests for object assignments.
// Granting goes through the authorizer (only the object owner or an
// admin may bind actors); removal permissions live in the registry.
type AssignmentHandler struct {
	registry   svcauthz.Registry
	authorizer svcauthz.Authorizer
	logger     *slog.Logger
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(registry svcauthz.Registry, authorizer svcauthz.Authorizer, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		registry:   registry,
		authorizer: authorizer,
		logger:     logger,
	}
}

type upsertAssignmentBody struct {
	ScopedRole models.ScopedRole `json:"scoped_role"`
}

// Upsert handles PUT /api/objects/{id}/assignments/{actor_id}
func (h *AssignmentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	objectID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	targetID, err := httputil.PathID(r, "actor_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body upsertAssignmentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := h.authorizer.Authorize(r.Context(), actor, models.ActionCreate, models.ResourceAssignment, objectID)
	if err != nil {
		handleError(w, err)
		return
	}
	if !decision.Allowed {
		handleError(w, decision.Err())
		return
	}

	assignment, err := h.registry.UpsertAssignment(r.Context(), &svcauthz.UpsertAssignmentRequest{
		ObjectID:      objectID,
		TargetActorID: targetID,
		ScopedRole:    body.ScopedRole,
	})
	if err != nil {
		h.logger.Warn("upsert assignment failed",
			slog.String("request_id", httputil.GetRequestID(r)),
			slog.Int64("object_id", objectID),
			slog.Int64("target_actor_id", targetID),
			slog.String("error", err.Error()),
		)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assignment)
}

// List handles GET /api/objects/{id}/assignments
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	objectID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := h.authorizer.AuthorizeAnchored(r.Context(), actor, models.ActionRead, models.ResourceAssignment, objectID)
	if err != nil {
		handleError(w, err)
		return
	}
	if !decision.Allowed {
		handleError(w, decision.Err())
		return
	}

	assignments, err := h.registry.ListAssignments(r.Context(), objectID)
	if err != nil {
		handleError(w, err)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
	})
}

// ListMine handles GET /api/assignments. It lists the calling actor's
// own bindings across all objects.
func (h *AssignmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	assignments, err := h.registry.ListActorAssignments(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
	})
}

// Remove handles DELETE /api/objects/{id}/assignments/{actor_id}
func (h *AssignmentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	objectID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	targetID, err := httputil.PathID(r, "actor_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.registry.RemoveAssignment(r.Context(), &svcauthz.RemoveAssignmentRequest{
		ObjectID:        objectID,
		TargetActorID:   targetID,
		RequestingActor: actor,
	}); err != nil {
		h.logger.Warn("remove assignment failed",
			slog.String("request_id", httputil.GetRequestID(r)),
			slog.Int64("object_id", objectID),
			slog.Int64("target_actor_id", targetID),
			slog.String("error", err.Error()),
		)
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
