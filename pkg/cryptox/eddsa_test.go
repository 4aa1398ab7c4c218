package cryptox

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSigningKey(t *testing.T) {
	key, err := NewSigningKey()
	require.NoError(t, err)

	block, _ := pem.Decode(key.PEM)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)
	priv, ok := parsed.(ed25519.PrivateKey)
	require.True(t, ok)

	require.Equal(t, Thumbprint(priv.Public().(ed25519.PublicKey)), key.ID)

	other, err := NewSigningKey()
	require.NoError(t, err)
	require.NotEqual(t, key.ID, other.ID)
}

// RFC 8037 appendix A.3.
func TestThumbprintVector(t *testing.T) {
	pub, err := hex.DecodeString("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	require.NoError(t, err)

	require.Equal(t, "kPrK_qmxVWaYVA9wwBF6Iuo3vVzz7TxHCTwXBygrS4k", Thumbprint(pub))
}
