package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_USER", "recipes")
	t.Setenv("DB_PASS", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3002, cfg.Port)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "recipeDB", cfg.DBName)
	assert.Equal(t, "recipes", cfg.Collection)
	assert.Equal(t, "cluster0.mongodb.net", cfg.DBHost)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":3002", cfg.Addr())
}

func TestLoadPortOverride(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE", StoreMemory)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("STORE", StoreMongo)
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASS", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mongo with credentials", Config{Port: 3002, Store: StoreMongo, DBUser: "u", DBPass: "p"}, false},
		{"mongo with uri", Config{Port: 3002, Store: StoreMongo, MongoURI: "mongodb://localhost"}, false},
		{"mongo without password", Config{Port: 3002, Store: StoreMongo, DBUser: "u"}, true},
		{"firestore with project", Config{Port: 3002, Store: StoreFirestore, FirestoreProject: "p"}, false},
		{"firestore without project", Config{Port: 3002, Store: StoreFirestore}, true},
		{"memory", Config{Port: 3002, Store: StoreMemory}, false},
		{"unknown store", Config{Port: 3002, Store: "redis"}, true},
		{"bad port", Config{Port: 0, Store: StoreMemory}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
