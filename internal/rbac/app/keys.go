package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/rbac/pkg/jwtx"
)

// InitKeys generates the signing keys for this process. Keys live in memory
// only, so tokens issued before a restart stop verifying.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"num_keys", km.NumSigners(),
		"issuer", cfg.Issuer,
	)
	return km, nil
}
