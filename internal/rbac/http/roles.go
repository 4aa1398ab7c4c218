package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
	"github.com/aussiebroadwan/rbac/internal/rbac/service"
	"github.com/aussiebroadwan/rbac/pkg/httpx"
	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
)

// RolesHandler serves the role registry endpoints.
type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleCreate handles POST /roles
//
//	@Summary		Create a role
//	@Description	Creates a role. The name is required and unique; description, type and scope are optional strings.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		rbacsdk.CreateRoleRequest	true	"Role"
//	@Success		201		{object}	rbacsdk.CreateRoleResponse	"message, role_id"
//	@Failure		400		{object}	rbacsdk.ErrorResponse		"Validation error or name already taken"
//	@Failure		401		{object}	rbacsdk.ErrorResponse		"Missing or invalid token"
//	@Failure		500		{object}	rbacsdk.ErrorResponse		"Internal server error"
//	@Router			/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req rbacsdk.CreateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.RolesService.Create(r.Context(), service.CreateRoleInput{
		Name:        req.Name.Ptr(),
		Description: req.Description.Ptr(),
		Type:        req.Type.Ptr(),
		Scope:       req.Scope.Ptr(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rbacsdk.CreateRoleResponse{
		Message: "role created",
		RoleID:  role.ID,
	})
}

// HandleUpdate handles PUT /roles/{id}
//
//	@Summary		Update a role
//	@Description	Changes only the fields present in the body. An empty body leaves the role unchanged.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int							true	"Role ID"
//	@Param			request	body		rbacsdk.UpdateRoleRequest	true	"Fields to change"
//	@Success		200		{object}	rbacsdk.MessageResponse		"message"
//	@Failure		400		{object}	rbacsdk.ErrorResponse		"Validation error or name already taken"
//	@Failure		401		{object}	rbacsdk.ErrorResponse		"Missing or invalid token"
//	@Failure		404		{object}	rbacsdk.ErrorResponse		"Role not found"
//	@Failure		500		{object}	rbacsdk.ErrorResponse		"Internal server error"
//	@Router			/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	// Only integer ids name a role.
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, service.ErrRoleNotFound)
		return
	}

	var req rbacsdk.UpdateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	_, err = h.RolesService.Update(r.Context(), id, domain.RoleChanges{
		Name:        req.Name.Ptr(),
		Description: req.Description.Ptr(),
		Type:        req.Type.Ptr(),
		Scope:       req.Scope.Ptr(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rbacsdk.MessageResponse{Message: "role updated"})
}

// HandleList handles GET /roles
//
//	@Summary		List roles
//	@Description	Returns every role in creation order.
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		rbacsdk.Role			"Roles"
//	@Failure		401	{object}	rbacsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		500	{object}	rbacsdk.ErrorResponse	"Internal server error"
//	@Router			/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleResponses(roles))
}

func toRoleResponses(roles []domain.Role) []rbacsdk.Role {
	out := make([]rbacsdk.Role, len(roles))
	for i, role := range roles {
		out[i] = rbacsdk.Role{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Type:        role.Type,
			Scope:       role.Scope,
			CreatedAt:   role.CreatedAt,
			UpdatedAt:   role.UpdatedAt,
		}
	}
	return out
}
