package http_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	t.Run("livez", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp rbacsdk.HealthResponse
		decode(t, rec, &resp)
		require.Equal(t, "ok", resp.Status)
		require.Equal(t, "test", resp.Version)
		require.Nil(t, resp.Checks)
	})

	t.Run("readyz", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp rbacsdk.HealthResponse
		decode(t, rec, &resp)
		require.Equal(t, "ok", resp.Status)
		require.NotNil(t, resp.Checks)
		require.Equal(t, "ok", resp.Checks.Database)
		require.Equal(t, "ok", resp.Checks.Signer)
	})

	t.Run("jwks", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/.well-known/jwks.json", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var set rbacsdk.JWKS
		decode(t, rec, &set)
		require.Len(t, set.Keys, 1)
		require.Equal(t, "OKP", set.Keys[0].Kty)
		require.Equal(t, "Ed25519", set.Keys[0].Crv)
	})
}

func TestReadyzDegradedWhenDatabaseClosed(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NoError(t, h.store.Close())

	rec := h.do(http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp rbacsdk.HealthResponse
	decode(t, rec, &resp)
	require.Equal(t, "degraded", resp.Status)
	require.Contains(t, resp.Checks.Database, "error")
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NoError(t, h.store.Close())

	rec := h.authed(http.MethodGet, "/roles", nil)
	resp := requireError(t, rec, http.StatusInternalServerError, rbacsdk.ErrorCodeInternal)
	require.Equal(t, "internal server error", resp.Message)
	require.Empty(t, resp.Details)
}
