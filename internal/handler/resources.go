package handler

import (
	"log/slog"
	"net/http"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/services/tracking"
	"github.com/DGersmv/personal-227-info-sub000/internal/httputil"
)

// ResourceHandler handles HTTP requests for nested resource records.
// One handler serves every nested type; the path carries the type name.
type ResourceHandler struct {
	resourceService tracking.ResourceService
	logger          *slog.Logger
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(resourceService tracking.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		logger:          logger,
	}
}

// pathResourceType parses and validates the {type} path value. Objects
// and assignments have dedicated endpoints and are rejected here.
func pathResourceType(r *http.Request) (models.ResourceType, bool) {
	rt := models.ResourceType(r.PathValue("type"))
	if !rt.Valid() || rt == models.ResourceObject || rt == models.ResourceAssignment {
		return "", false
	}
	return rt, true
}

// Create handles POST /api/resources
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	var req tracking.CreateResourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := h.resourceService.CreateResource(r.Context(), actor, &req)
	if err != nil {
		h.logger.Warn("create resource failed",
			slog.String("request_id", httputil.GetRequestID(r)),
			slog.String("resource_type", string(req.Type)),
			slog.String("error", err.Error()),
		)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resource)
}

// Get handles GET /api/resources/{type}/{id}
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	rt, ok := pathResourceType(r)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid resource type")
		return
	}
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := h.resourceService.GetResource(r.Context(), actor, rt, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resource)
}

// List handles GET /api/objects/{id}/resources/{type}
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	rt, ok := pathResourceType(r)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid resource type")
		return
	}
	objectID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resources, err := h.resourceService.ListResources(r.Context(), actor, rt, objectID)
	if err != nil {
		handleError(w, err)
		return
	}
	if resources == nil {
		resources = []models.Resource{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
	})
}

// Update handles PATCH /api/resources/{type}/{id}
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	rt, ok := pathResourceType(r)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid resource type")
		return
	}
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req tracking.UpdateResourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := h.resourceService.UpdateResource(r.Context(), actor, rt, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resource)
}

type setVisibilityBody struct {
	VisibleToOwner bool `json:"visible_to_owner"`
}

// SetVisibility handles PATCH /api/resources/{type}/{id}/visibility
func (h *ResourceHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	rt, ok := pathResourceType(r)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid resource type")
		return
	}
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body setVisibilityBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := h.resourceService.SetResourceVisibility(r.Context(), actor, rt, id, body.VisibleToOwner)
	if err != nil {
		h.logger.Warn("set resource visibility failed",
			slog.String("request_id", httputil.GetRequestID(r)),
			slog.String("resource_type", string(rt)),
			slog.Int64("resource_id", id),
			slog.String("error", err.Error()),
		)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resource)
}

// Delete handles DELETE /api/resources/{type}/{id}
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	rt, ok := pathResourceType(r)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, "invalid resource type")
		return
	}
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.resourceService.DeleteResource(r.Context(), actor, rt, id); err != nil {
		h.logger.Warn("delete resource failed",
			slog.String("request_id", httputil.GetRequestID(r)),
			slog.String("resource_type", string(rt)),
			slog.Int64("resource_id", id),
			slog.String("error", err.Error()),
		)
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
