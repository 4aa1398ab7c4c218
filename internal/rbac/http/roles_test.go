package http_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
	"github.com/stretchr/testify/require"
)

func TestCreateRole(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	t.Run("all fields", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", map[string]string{
			"name":        "editor",
			"description": "Can edit posts",
			"type":        "content",
			"scope":       "blog",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp rbacsdk.CreateRoleResponse
		decode(t, rec, &resp)
		require.Equal(t, "role created", resp.Message)
		require.Positive(t, resp.RoleID)
	})

	t.Run("name only", func(t *testing.T) {
		h.createRole("viewer")
	})

	t.Run("duplicate name", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", map[string]string{"name": "editor"})
		resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeConflict)
		require.Equal(t, "role_name_taken", resp.Details["reason"])
	})

	t.Run("missing name", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", map[string]string{"description": "x"})
		resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
		require.Contains(t, resp.Details, "name")
	})

	t.Run("blank name", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", map[string]string{"name": "   "})
		requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
	})

	t.Run("name too long", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", map[string]string{"name": strings.Repeat("a", 81)})
		resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
		require.Contains(t, resp.Details, "name")
	})

	t.Run("non-string field", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", `{"name": 42}`)
		resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
		require.Contains(t, resp.Details, "name")
	})

	t.Run("null optional field", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", `{"name": "nulls", "scope": null}`)
		resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
		require.Contains(t, resp.Details, "scope")
	})

	t.Run("NUL characters", func(t *testing.T) {
		for body, field := range map[string]string{
			`{"name": "\u0000"}`:                       "name",
			`{"name": "a\u0000b"}`:                     "name",
			`{"name": "x", "description": "a\u0000b"}`: "description",
		} {
			rec := h.authed(http.MethodPost, "/roles", body)
			resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
			require.Contains(t, resp.Details, field, body)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		rec := h.authed(http.MethodPost, "/roles", nil)
		requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
	})

	t.Run("body too large", func(t *testing.T) {
		body := fmt.Sprintf(`{"name": "big", "description": %q}`, strings.Repeat("x", 2<<20))
		rec := h.authed(http.MethodPost, "/roles", body)
		requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
	})
}

func TestUpdateRole(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	id := h.createRole("editor")
	h.createRole("viewer")
	path := fmt.Sprintf("/roles/%d", id)

	t.Run("partial update", func(t *testing.T) {
		rec := h.authed(http.MethodPut, path, map[string]string{"description": "Edits things"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp rbacsdk.MessageResponse
		decode(t, rec, &resp)
		require.Equal(t, "role updated", resp.Message)

		role := findRole(t, h, id)
		require.Equal(t, "editor", role.Name)
		require.NotNil(t, role.Description)
		require.Equal(t, "Edits things", *role.Description)
		require.Nil(t, role.Scope)
	})

	t.Run("rename", func(t *testing.T) {
		rec := h.authed(http.MethodPut, path, map[string]string{"name": "author"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, "author", findRole(t, h, id).Name)
	})

	t.Run("rename to own name", func(t *testing.T) {
		rec := h.authed(http.MethodPut, path, map[string]string{"name": "author"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("empty body leaves role unchanged", func(t *testing.T) {
		before := findRole(t, h, id)
		rec := h.authed(http.MethodPut, path, `{}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, before, findRole(t, h, id))
	})

	t.Run("name taken by another role", func(t *testing.T) {
		rec := h.authed(http.MethodPut, path, map[string]string{"name": "viewer"})
		requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeConflict)
	})

	t.Run("blank name", func(t *testing.T) {
		rec := h.authed(http.MethodPut, path, map[string]string{"name": ""})
		requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := h.authed(http.MethodPut, "/roles/9999", map[string]string{"name": "ghost"})
		requireError(t, rec, http.StatusNotFound, rbacsdk.ErrorCodeNotFound)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := h.authed(http.MethodPut, "/roles/abc", map[string]string{"name": "ghost"})
		requireError(t, rec, http.StatusNotFound, rbacsdk.ErrorCodeNotFound)
	})
}

func TestListRoles(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.authed(http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	first := h.createRole("editor")
	second := h.createRole("viewer")

	var roles []rbacsdk.Role
	rec = h.authed(http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &roles)

	require.Len(t, roles, 2)
	require.Equal(t, first, roles[0].ID)
	require.Equal(t, second, roles[1].ID)
	require.Nil(t, roles[0].Description)
	require.False(t, roles[0].CreatedAt.IsZero())
}

func findRole(t *testing.T, h *harness, id int64) rbacsdk.Role {
	t.Helper()

	var roles []rbacsdk.Role
	rec := h.authed(http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &roles)

	for _, r := range roles {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("role %d not listed", id)
	return rbacsdk.Role{}
}
