package http_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	t.Run("success", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/login", "", map[string]string{
			"username": testUser,
			"password": testPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var tok rbacsdk.TokenResponse
		decode(t, rec, &tok)
		require.NotEmpty(t, tok.AccessToken)
		require.Equal(t, "Bearer", tok.TokenType)
		require.Equal(t, 60, tok.ExpiresIn)
	})

	t.Run("missing password", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/login", "", map[string]string{"username": testUser})
		resp := requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
		require.Contains(t, resp.Details, "password")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/login", "", map[string]string{
			"username": testUser,
			"password": "not-the-password",
		})
		requireError(t, rec, http.StatusUnauthorized, rbacsdk.ErrorCodeInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/login", "", map[string]string{
			"username": "nobody",
			"password": testPassword,
		})
		requireError(t, rec, http.StatusUnauthorized, rbacsdk.ErrorCodeInvalidCredentials)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/login", "", `{"username":`)
		requireError(t, rec, http.StatusBadRequest, rbacsdk.ErrorCodeValidation)
	})
}

func TestLoginRateLimited(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	// The harness already logged in once as testUser.
	body := map[string]string{"username": testUser, "password": "wrong-password"}
	for range 4 {
		rec := h.do(http.MethodPost, "/login", "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := h.do(http.MethodPost, "/login", "", body)
	requireError(t, rec, http.StatusTooManyRequests, rbacsdk.ErrorCodeRateLimited)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Another username from the same address has its own bucket.
	rec = h.do(http.MethodPost, "/login", "", map[string]string{"username": "other", "password": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/roles"},
		{http.MethodPut, "/roles/1"},
		{http.MethodGet, "/roles"},
		{http.MethodPost, "/user_roles/1/1"},
		{http.MethodPost, "/users"},
		{http.MethodGet, "/users/1/roles"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := h.do(rt.method, rt.path, "", nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

			rec = h.do(rt.method, rt.path, "not-a-jwt", nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
