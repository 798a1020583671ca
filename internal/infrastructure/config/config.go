package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-level configuration for the CGI entry points. The
// per-request CGI variables (REQUEST_METHOD and friends) are deliberately not
// here; the cgi package reads those itself.
type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	LogFile  string `env:"LOG_FILE,  default=/tmp/auth-cgi.log"`

	Store  StoreConfig
	Cookie CookieConfig
	Upload UploadConfig
}

type StoreConfig struct {
	// Backend selects the record store implementation: "file" or "mongo".
	Backend     string        `env:"STORE_BACKEND,      default=file"`
	Path        string        `env:"STORE_PATH,         default=./data/records.txt"`
	LockTimeout time.Duration `env:"STORE_LOCK_TIMEOUT, default=2s"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_system"`
}

type CookieConfig struct {
	Name   string `env:"COOKIE_NAME,    default=token"`
	MaxAge int    `env:"COOKIE_MAX_AGE, default=86400"`
	Path   string `env:"COOKIE_PATH,    default=/"`
}

type UploadConfig struct {
	// Root confines the delete utility; paths escaping it are rejected.
	Root string `env:"UPLOAD_PATH, default=./upload"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
