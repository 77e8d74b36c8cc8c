// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Supported store backends.
const (
	StoreMongo     = "mongo"
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

// Config holds the configuration for this service
//
// use DB_USER="recipes" and DB_PASS="secret" to connect to the default Atlas
// cluster, or MONGO_URI="mongodb://localhost:27017" for a local database.
type Config struct {
	Port             int           `env:"PORT,default=3002" description:"the port the HTTP server listens on"`
	Store            string        `env:"STORE,default=mongo" description:"the store backend: mongo, firestore or memory"`
	DBUser           string        `env:"DB_USER,optional" description:"user of the MongoDB cluster"`
	DBPass           string        `env:"DB_PASS,optional" description:"password of the MongoDB cluster"`
	DBHost           string        `env:"DB_HOST,default=cluster0.mongodb.net" description:"host of the MongoDB Atlas cluster"`
	MongoURI         string        `env:"MONGO_URI,optional" description:"full MongoDB connection string, overrides DB_USER, DB_PASS and DB_HOST"`
	DBName           string        `env:"DB_NAME,default=recipeDB" description:"the database holding the recipes"`
	Collection       string        `env:"DB_COLLECTION,default=recipes" description:"the collection holding the recipes"`
	FirestoreProject string        `env:"FIRESTORE_PROJECT,optional" description:"Google Cloud project of the Firestore database"`
	LogLevel         string        `env:"LOG_LEVEL,default=info" description:"The level used for logger, can be debug, warning, info, error"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,default=15s" description:"how long to wait for in-flight requests on shutdown"`
	ImageTimeout     time.Duration `env:"IMAGE_FETCH_TIMEOUT,default=10s" description:"timeout for fetching recipe images"`
}

// Load decodes the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings required by the selected store are present.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" && (c.DBUser == "" || c.DBPass == "") {
			return errors.New("DB_USER and DB_PASS are required for the mongo store")
		}
	case StoreFirestore:
		if c.FirestoreProject == "" {
			return errors.New("FIRESTORE_PROJECT is required for the firestore store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
