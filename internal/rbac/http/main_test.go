package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/rbac/internal/rbac/http"
	"github.com/aussiebroadwan/rbac/internal/rbac/service"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/aussiebroadwan/rbac/internal/rbac/store/drivers/sqlite"
	"github.com/aussiebroadwan/rbac/pkg/cryptox"
	"github.com/aussiebroadwan/rbac/pkg/jwtx"
	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "rbac-test"
	testUser     = "admin"
	testPassword = "password123"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("test-pepper")
	os.Exit(m.Run())
}

type harness struct {
	t      *testing.T
	router *httpapi.Router
	store  store.Store
	token  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 1})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(km.KeySet, km.Verifier, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:      st,
		KeyManager: km,
		Issuer:     testIssuer,
		AccessTTL:  time.Minute,
	}
	router.RolesService = &service.RolesService{Store: st}
	router.AssignmentsService = &service.AssignmentsService{Store: st}
	router.UsersService = &service.UsersService{Store: st}
	router.ApplyRoutes()

	created, err := router.UsersService.EnsureAdmin(t.Context(), testUser, testPassword)
	require.NoError(t, err)
	require.True(t, created)

	h := &harness{t: t, router: router, store: st}

	rec := h.do(http.MethodPost, "/login", "", map[string]string{
		"username": testUser,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tok rbacsdk.TokenResponse
	decode(t, rec, &tok)
	h.token = tok.AccessToken

	return h
}

// do sends body as JSON unless it is already a string.
func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) authed(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	return h.do(method, path, h.token, body)
}

func (h *harness) createRole(name string) int64 {
	h.t.Helper()

	rec := h.authed(http.MethodPost, "/roles", map[string]string{"name": name})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp rbacsdk.CreateRoleResponse
	decode(h.t, rec, &resp)
	return resp.RoleID
}

func (h *harness) createUser(username string) int64 {
	h.t.Helper()

	rec := h.authed(http.MethodPost, "/users", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp rbacsdk.CreateUserResponse
	decode(h.t, rec, &resp)
	return resp.UserID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) rbacsdk.ErrorResponse {
	t.Helper()

	require.Equal(t, status, rec.Code, rec.Body.String())
	var resp rbacsdk.ErrorResponse
	decode(t, rec, &resp)
	require.Equal(t, code, resp.Code)
	require.NotEmpty(t, resp.Message)
	return resp
}
