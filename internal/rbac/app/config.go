package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Issuer        string        `mapstructure:"RBAC_ISSUER"`
	NumKeys       int           `mapstructure:"RBAC_NUM_KEYS"`   // 1..10
	AccessTTL     time.Duration `mapstructure:"RBAC_ACCESS_TTL"` // lifetime of issued tokens
	PepperFile    string        `mapstructure:"RBAC_PEPPER_FILE"`
	AdminUsername string        `mapstructure:"RBAC_ADMIN_USERNAME"` // seeded when no users exist
	AdminPassword string        `mapstructure:"RBAC_ADMIN_PASSWORD"`

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"` // sqlite, postgres
	DatabaseFile   string `mapstructure:"DATABASE_FILE"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	Env                 string        `mapstructure:"ENV"`        // dev, staging, prod
	LogLevel            string        `mapstructure:"LOG_LEVEL"`  // debug, info, warn, error
	LogFormat           string        `mapstructure:"LOG_FORMAT"` // json, text
	Port                int           `mapstructure:"PORT"`
	ShutdownGracePeriod time.Duration `mapstructure:"SHUTDOWN_GRACE_PERIOD"`
}

var configDefaults = map[string]any{
	"RBAC_ISSUER":           "rbac",
	"RBAC_NUM_KEYS":         3,
	"RBAC_ACCESS_TTL":       15 * time.Minute,
	"RBAC_PEPPER_FILE":      "pepper",
	"RBAC_ADMIN_USERNAME":   "",
	"RBAC_ADMIN_PASSWORD":   "",
	"DATABASE_DRIVER":       "sqlite",
	"DATABASE_FILE":         "rbac.db",
	"DATABASE_URL":          "",
	"ENV":                   "dev",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"PORT":                  8080,
	"SHUTDOWN_GRACE_PERIOD": 10 * time.Second,
}

// LoadConfig reads the environment, after loading a .env file when one is
// present in the working directory.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}
	return loadFrom(viper.New())
}

func loadFrom(v *viper.Viper) (Config, error) {
	for key, def := range configDefaults {
		v.SetDefault(key, def)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not one of sqlite, postgres", c.DatabaseDriver))
	}

	if c.Issuer == "" {
		errs = append(errs, errors.New("RBAC_ISSUER must not be empty"))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("RBAC_ACCESS_TTL must be positive"))
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("RBAC_ADMIN_USERNAME and RBAC_ADMIN_PASSWORD must be set together"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	return errors.Join(errs...)
}
