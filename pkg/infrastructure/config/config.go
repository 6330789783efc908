package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is read from STORE_* environment variables. An empty DSN selects
// the in-memory backend with the seed catalog, which is what local
// development runs on.
type Config struct {
	Addr             string        `envconfig:"ADDR" default:":8080"`
	DSN              string        `envconfig:"DSN"`
	MigrationsPath   string        `envconfig:"MIGRATIONS_PATH" default:"migrations"`
	BlobDir          string        `envconfig:"BLOB_DIR" default:"uploads"`
	BlobBaseURL      string        `envconfig:"BLOB_BASE_URL" default:"http://localhost:8080/uploads"`
	CartSnapshotPath string        `envconfig:"CART_SNAPSHOT" default:"medferpa_cart.json"`
	AdminEmails      []string      `envconfig:"ADMIN_EMAILS"`
	WatchInterval    time.Duration `envconfig:"WATCH_INTERVAL" default:"2s"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("store", &c); err != nil {
		return nil, errors.Wrap(err, "process environment config")
	}
	return &c, nil
}
