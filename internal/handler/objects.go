package handler

import (
	"log/slog"
	"net/http"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/models"
	"github.com/DGersmv/personal-227-info-sub000/internal/domain/services/tracking"
	"github.com/DGersmv/personal-227-info-sub000/internal/httputil"
)

// ObjectHandler handles HTTP requests for top-level objects.
type ObjectHandler struct {
	objectService tracking.ObjectService
	logger        *slog.Logger
}

// NewObjectHandler creates a new object handler.
func NewObjectHandler(objectService tracking.ObjectService, logger *slog.Logger) *ObjectHandler {
	return &ObjectHandler{
		objectService: objectService,
		logger:        logger,
	}
}

// Create handles POST /api/objects
func (h *ObjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	var req tracking.CreateObjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	object, err := h.objectService.CreateObject(r.Context(), actor, &req)
	if err != nil {
		h.logger.Warn("create object failed",
			slog.String("request_id", httputil.GetRequestID(r)),
			slog.String("error", err.Error()),
		)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, object)
}

// Get handles GET /api/objects/{id}
func (h *ObjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	object, err := h.objectService.GetObject(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, object)
}

// List handles GET /api/objects
func (h *ObjectHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	objects, err := h.objectService.ListOwnObjects(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}
	if objects == nil {
		objects = []models.Object{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"objects": objects,
	})
}

// Delete handles DELETE /api/objects/{id}
func (h *ObjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.objectService.DeleteObject(r.Context(), actor, id); err != nil {
		h.logger.Warn("delete object failed",
			slog.String("request_id", httputil.GetRequestID(r)),
			slog.Int64("object_id", id),
			slog.String("error", err.Error()),
		)
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
