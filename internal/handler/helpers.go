package handler

import (
	"errors"
	"net/http"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain"
	"github.com/DGersmv/personal-227-info-sub000/internal/httputil"
)

// handleError converts domain errors to HTTP responses. The mapping is
// uniform across resource types: Unauthenticated→401, NoAccess/
// NotPermitted/RoleMismatch→403, NotFound→404, Validation and
// Conflict→400. Anything else is a storage failure and surfaces as 500.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, domain.ErrNoAccess),
		errors.Is(err, domain.ErrNotPermitted),
		errors.Is(err, domain.ErrRoleMismatch):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
