package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnv_Defaults(t *testing.T) {
	env, err := NewEnv("")

	require.NoError(t, err)
	assert.Equal(t, "production", env.AppEnv)
	assert.Equal(t, "mongodb://localhost:27017", env.MongoURI)
	assert.Equal(t, "app", env.DBName)
	assert.Equal(t, 10, env.ContextTimeout)
	assert.Equal(t, "info", env.LogLevel)
}

func TestNewEnv_ProcessEnvironmentWins(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("CONTEXT_TIMEOUT", "30")

	env, err := NewEnv("")

	require.NoError(t, err)
	assert.Equal(t, "mongodb://db.internal:27017", env.MongoURI)
	assert.Equal(t, 30, env.ContextTimeout)
}

func TestNewEnv_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_ENV=development\nDB_NAME=library_test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	env, err := NewEnv(path)

	require.NoError(t, err)
	assert.Equal(t, "development", env.AppEnv)
	assert.Equal(t, "library_test", env.DBName)
}

func TestNewEnv_MissingExplicitFileFails(t *testing.T) {
	_, err := NewEnv(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, err)
}
