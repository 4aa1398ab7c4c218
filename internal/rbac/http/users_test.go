package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	id := h.createUser("alice")
	require.Positive(t, id)

	t.Run("duplicate", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/users", map[string]string{
			"username": "alice",
			"password": testPassword,
		})
		requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeConflict)
	})

	t.Run("short password", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/users", map[string]string{
			"username": "carol",
			"password": "short",
		})
		resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
		require.Contains(t, resp.Details, "password")
	})

	t.Run("new user can log in", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/login", "", map[string]string{
			"username": "alice",
			"password": testPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestListUserRoles(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	alice := h.createUser("alice")
	editor := h.createRole("editor")
	h.createRole("viewer")

	rec := h.authed(http.MethodPost, fmt.Sprintf("/user_roles/%d/%d", alice, editor), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.authed(http.MethodGet, fmt.Sprintf("/users/%d/roles", alice), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []rbacsdk.Role
	decode(t, rec, &roles)
	require.Len(t, roles, 1)
	require.Equal(t, "editor", roles[0].Name)

	rec = h.authed(http.MethodGet, "/users/9999/roles", nil)
	requireError(t, rec, http.StatusNotFound, rbacsdk.ErrorCodeNotFound)

	rec = h.authed(http.MethodGet, "/users/abc/roles", nil)
	requireError(t, rec, http.StatusNotFound, rbacsdk.ErrorCodeNotFound)
}
