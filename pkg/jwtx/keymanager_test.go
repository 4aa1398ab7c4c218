package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/rbac/pkg/cryptox"
	"github.com/aussiebroadwan/rbac/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testIssuer = "rbac-test"

func newKeyManager(t *testing.T, numKeys int) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  testIssuer,
		NumKeys: numKeys,
	})
	require.NoError(t, err)
	return km
}

func TestNewEphemeralKeyManager(t *testing.T) {
	t.Parallel()

	t.Run("requires issuer", func(t *testing.T) {
		_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
		require.Error(t, err)
	})

	t.Run("defaults to three keys", func(t *testing.T) {
		km := newKeyManager(t, 0)
		require.Equal(t, 3, km.NumSigners())
		require.Len(t, km.KeySet.PublicJWKS().Keys, 3)
		require.True(t, km.IsReady())
	})

	t.Run("caps key count", func(t *testing.T) {
		km := newKeyManager(t, 50)
		require.Equal(t, 10, km.NumSigners())
	})
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()
	km := newKeyManager(t, 2)

	claims := jwtx.NewAccessClaims("alice", testIssuer, nil, time.Minute, time.Now().UTC())
	token, err := km.Signer().Sign(claims)
	require.NoError(t, err)

	got, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Subject)
	require.Equal(t, claims.ID, got.ID)

	jwks := km.KeySet.PublicJWKS()
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.True(t, strings.HasPrefix(jwks.Keys[0].Kid, "rbac-"))
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()
	km := newKeyManager(t, 1)
	now := time.Now().UTC()

	sign := func(c jwtx.Claims) string {
		tok, err := km.Signer().Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := km.Verifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := km.Verifier.Verify(sign(jwtx.NewAccessClaims("alice", "someone-else", nil, time.Minute, now)))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := km.Verifier.Verify(sign(jwtx.NewAccessClaims("alice", testIssuer, nil, time.Minute, now.Add(-time.Hour))))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := km.Verifier.Verify(sign(jwtx.NewAccessClaims("", testIssuer, nil, time.Minute, now)))
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("unknown key", func(t *testing.T) {
		key, err := cryptox.NewSigningKey()
		require.NoError(t, err)
		stranger, err := jwtx.NewSignerEdDSA("stranger", key.PEM)
		require.NoError(t, err)

		tok, err := stranger.Sign(jwtx.NewAccessClaims("alice", testIssuer, nil, time.Minute, now))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrNoKey)
	})

	t.Run("other algorithm", func(t *testing.T) {
		c := jwtx.NewAccessClaims("alice", testIssuer, nil, time.Minute, now)
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
		tok.Header["kid"] = km.Signer().KID()
		raw, err := tok.SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestNewSignerEdDSARejectsBadPEM(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerEdDSA("k", []byte("nope"))
	require.Error(t, err)

	_, err = jwtx.NewSignerEdDSA("k", []byte("-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n"))
	require.Error(t, err)
}
