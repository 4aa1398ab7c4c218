package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/rbac/internal/rbac/service"
	"github.com/aussiebroadwan/rbac/pkg/httpx"
	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
)

type UsersHandler struct {
	UsersService       *service.UsersService
	AssignmentsService *service.AssignmentsService
}

// HandleCreate handles POST /users
//
//	@Summary		Create a user
//	@Description	Registers a user that can log in and receive roles.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		rbacsdk.CreateUserRequest	true	"username, password"
//	@Success		201		{object}	rbacsdk.CreateUserResponse	"message, user_id"
//	@Failure		400		{object}	rbacsdk.ErrorResponse		"Validation error or username taken"
//	@Failure		401		{object}	rbacsdk.ErrorResponse		"Missing or invalid token"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req rbacsdk.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.UsersService.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rbacsdk.CreateUserResponse{
		Message: "user created",
		UserID:  user.ID,
	})
}

// HandleListRoles handles GET /users/{id}/roles
//
//	@Summary		List a user's roles
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int						true	"User ID"
//	@Success		200	{array}		rbacsdk.Role			"Roles"
//	@Failure		401	{object}	rbacsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		404	{object}	rbacsdk.ErrorResponse	"User not found"
//	@Router			/users/{id}/roles [get].
func (h *UsersHandler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, service.ErrUserNotFound)
		return
	}

	roles, err := h.AssignmentsService.ListForUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoleResponses(roles))
}
