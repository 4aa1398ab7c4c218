package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/rbac/pkg/httpx"
	"github.com/aussiebroadwan/rbac/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthnMiddleware(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "rbac-test", NumKeys: 1})
	require.NoError(t, err)

	var subject string
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = httpx.SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), httpx.AuthnMiddleware(km.Verifier))

	sign := func(issuedAt time.Time) string {
		tok, err := km.Signer().Sign(jwtx.NewAccessClaims("alice", "rbac-test", nil, time.Minute, issuedAt))
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantDesc   string
	}{
		{"no header", "", http.StatusUnauthorized, "missing bearer token"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "missing bearer token"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "missing bearer token"},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, "token verification failed"},
		{"expired token", "Bearer " + sign(time.Now().Add(-time.Hour)), http.StatusUnauthorized, "token expired"},
		{"valid token", "Bearer " + sign(time.Now()), http.StatusNoContent, ""},
		{"lower-case scheme", "bearer " + sign(time.Now()), http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodGet, "/roles", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDesc != "" {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), tt.wantDesc)
				require.Empty(t, subject)
				return
			}
			require.Equal(t, "alice", subject)
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("a"), mark("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b", "handler"}, order)
}
