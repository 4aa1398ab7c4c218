package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/aussiebroadwan/rbac/internal/rbac/service"
	"github.com/aussiebroadwan/rbac/pkg/httpx"
	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
)

type UserRolesHandler struct {
	AssignmentsService *service.AssignmentsService
}

// ServeHTTP handles POST /user_roles/{user_id}/{role_id}
//
//	@Summary		Assign a role to a user
//	@Description	Ids in the body take precedence; a missing body id falls back to the path. A body id that contradicts the path is rejected.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		int							true	"User ID"
//	@Param			role_id	path		int							true	"Role ID"
//	@Param			request	body		rbacsdk.AssignRoleRequest	false	"user_id, role_id"
//	@Success		201		{object}	rbacsdk.MessageResponse		"message"
//	@Failure		400		{object}	rbacsdk.ErrorResponse		"Validation error or role already assigned"
//	@Failure		401		{object}	rbacsdk.ErrorResponse		"Missing or invalid token"
//	@Failure		404		{object}	rbacsdk.ErrorResponse		"User or role not found"
//	@Failure		500		{object}	rbacsdk.ErrorResponse		"Internal server error"
//	@Router			/user_roles/{user_id}/{role_id} [post].
func (h *UserRolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rbacsdk.AssignRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	details := map[string]string{}
	userID := resolveID(details, "user_id", req.UserID, r.PathValue("user_id"))
	roleID := resolveID(details, "role_id", req.RoleID, r.PathValue("role_id"))
	if len(details) > 0 {
		writeError(w, r, apperror.Validation("invalid identifiers", details))
		return
	}

	if _, err := h.AssignmentsService.Assign(r.Context(), userID, roleID); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rbacsdk.MessageResponse{Message: "role assigned"})
}

// resolveID picks the body id when present and the path segment otherwise.
// Problems are recorded in details under field.
func resolveID(details map[string]string, field string, body rbacsdk.OptionalID, segment string) int64 {
	pathID, pathErr := strconv.ParseInt(segment, 10, 64)

	if body.Set {
		if pathErr == nil && pathID != body.Value {
			details[field] = "does not match the path"
		}
		return body.Value
	}

	if pathErr != nil {
		details[field] = "must be an integer"
		return 0
	}
	return pathID
}
